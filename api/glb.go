package api

import (
	"bytes"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/greatgamegal/mazematic/litematic"
	"github.com/greatgamegal/mazematic/voxel"
)

// VolumeToGLB meshes v greedily and returns a binary glTF scene with one
// node. Vertices carry flat normals and their block colour.
func VolumeToGLB(v *voxel.Volume) ([]byte, error) {
	mesh := voxel.GenerateMesh(v)
	colors, translucent, err := mesh.Colors()
	if err != nil {
		return nil, err
	}

	doc := gltf.NewDocument()
	doc.Asset.Generator = "mazematic"
	prim := &gltf.Primitive{
		Attributes: gltf.PrimitiveAttributes{
			gltf.POSITION: modeler.WritePosition(doc, mesh.Positions()),
			gltf.NORMAL:   modeler.WriteNormal(doc, mesh.Normals()),
			gltf.COLOR_0:  modeler.WriteColor(doc, colors),
		},
		Indices:  gltf.Index(modeler.WriteIndices(doc, mesh.Indices)),
		Material: gltf.Index(0),
	}

	alpha := gltf.AlphaOpaque
	if translucent {
		alpha = gltf.AlphaBlend
	}
	doc.Materials = []*gltf.Material{{
		Name:      "blocks",
		AlphaMode: alpha,
		PBRMetallicRoughness: &gltf.PBRMetallicRoughness{
			BaseColorFactor: &[4]float64{1, 1, 1, 1},
			MetallicFactor:  gltf.Float(0),
			RoughnessFactor: gltf.Float(1),
		},
	}}
	doc.Meshes = []*gltf.Mesh{{Name: litematic.RegionName, Primitives: []*gltf.Primitive{prim}}}
	doc.Nodes = []*gltf.Node{{Name: litematic.RegionName, Mesh: gltf.Index(0)}}
	doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, 0)

	var out bytes.Buffer
	enc := gltf.NewEncoder(&out)
	enc.AsBinary = true
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

// LitematicToGLB decodes a schematic file and previews its maze region.
func LitematicToGLB(data []byte) ([]byte, error) {
	doc, err := litematic.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	v, err := doc.Volume(litematic.RegionName)
	if err != nil {
		return nil, err
	}
	return VolumeToGLB(v)
}
