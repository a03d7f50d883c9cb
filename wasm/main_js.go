//go:build js && wasm

package main

import (
	"math/rand"
	"syscall/js"
	"time"

	"github.com/greatgamegal/mazematic/api"
	"github.com/greatgamegal/mazematic/mazepack"
)

func toJS(b []byte) js.Value {
	arr := js.Global().Get("Uint8Array").New(len(b))
	js.CopyBytesToJS(arr, b)
	return arr
}

func fromJS(v js.Value) []byte {
	b := make([]byte, v.Get("length").Int())
	js.CopyBytesToGo(b, v)
	return b
}

// generateMaze(width, length[, seed]) returns the schematic bytes.
func generateMaze(this js.Value, args []js.Value) any {
	p := api.DefaultParams()
	p.Stamp(time.Now(), 0)
	if len(args) >= 2 {
		p.Width, p.Height = args[0].Int(), args[1].Int()
	}
	if len(args) >= 3 && args[2].Int() != 0 {
		p.Source = rand.New(rand.NewSource(int64(args[2].Int())))
	}
	out, err := api.MazeToLitematicBytes(p)
	if err != nil {
		return js.ValueOf(err.Error())
	}
	return toJS(out)
}

func litematic2glb(this js.Value, args []js.Value) any {
	if len(args) < 1 {
		return js.ValueOf("missing litematic bytes")
	}
	out, err := api.LitematicToGLB(fromJS(args[0]))
	if err != nil {
		return js.ValueOf(err.Error())
	}
	return toJS(out)
}

func packLitematics(this js.Value, args []js.Value) any {
	if len(args) < 1 {
		return js.ValueOf("missing files object")
	}
	filesObj := args[0]
	files := map[string][]byte{}
	keys := js.Global().Get("Object").Call("keys", filesObj)
	for i := 0; i < keys.Length(); i++ {
		k := keys.Index(i).String()
		files[k] = fromJS(filesObj.Get(k))
	}
	out, err := api.PackLitematics(files, mazepack.CompZstd)
	if err != nil {
		return js.ValueOf(err.Error())
	}
	return toJS(out)
}

func unpackMazepack(this js.Value, args []js.Value) any {
	if len(args) < 1 {
		return js.ValueOf("missing pack bytes")
	}
	files, err := api.UnpackToMemory(fromJS(args[0]))
	if err != nil {
		return js.ValueOf(err.Error())
	}
	result := js.Global().Get("Object").New()
	for name, b := range files {
		result.Set(name, toJS(b))
	}
	return result
}

func main() {
	js.Global().Set("generateMaze", js.FuncOf(generateMaze))
	js.Global().Set("litematic2glb", js.FuncOf(litematic2glb))
	js.Global().Set("packLitematics", js.FuncOf(packLitematics))
	js.Global().Set("unpackMazepack", js.FuncOf(unpackMazepack))
	select {}
}
