package scene

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"render-engine/core"
	"render-engine/math"
)

// LoadGLTF opens a .glb or .gltf file and flattens its node hierarchy into a
// single Scene: every mesh primitive in every node is baked into world space
// using that node's accumulated transform, and appended to one shared set of
// polygon, material and texture tables. PBR metallic-roughness is
// approximated to Material's Albedo/Specular/Shininess fields, and base
// color and normal textures are bound to the matching texture slots.
func LoadGLTF(path string) (*Scene, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("gltf open %q: %w", path, err)
	}
	dir := filepath.Dir(path)
	s := NewScene()
	s.Materials = nil // default material re-added below at index 0 if needed

	texCache := make([]*Texture, len(doc.Textures))
	for i, gt := range doc.Textures {
		if gt.Source == nil {
			continue
		}
		img := doc.Images[*gt.Source]

		var tex *Texture
		if img.BufferView != nil {
			raw, rerr := modeler.ReadBufferView(doc, doc.BufferViews[*img.BufferView])
			if rerr != nil {
				fmt.Printf("gltf: image %d bufferview: %v\n", *gt.Source, rerr)
				continue
			}
			name := img.Name
			if name == "" {
				name = fmt.Sprintf("gltf_img_%d", *gt.Source)
			}
			tex, err = decodeImageBytes(name, raw)
			if err != nil {
				fmt.Printf("gltf: image %d decode: %v\n", *gt.Source, err)
				continue
			}
		} else if img.URI != "" && !img.IsEmbeddedResource() {
			tex, err = loadExternalImage(filepath.Join(dir, img.URI))
			if err != nil {
				fmt.Printf("gltf: image %d (%s): %v\n", *gt.Source, img.URI, err)
				continue
			}
		}

		if tex != nil {
			texCache[i] = tex
			s.Textures = append(s.Textures, tex)
		}
	}

	matCache := make([]int, len(doc.Materials))
	for i, gm := range doc.Materials {
		mat := DefaultMaterial()
		mat.Name = gm.Name

		if pbr := gm.PBRMetallicRoughness; pbr != nil {
			cf := pbr.BaseColorFactorOrDefault()
			mat.Albedo = core.Color{
				A: byteFromUnitF(cf[3]), R: byteFromUnitF(cf[0]),
				G: byteFromUnitF(cf[1]), B: byteFromUnitF(cf[2]),
			}
			if pbr.BaseColorTexture != nil {
				idx := pbr.BaseColorTexture.Index
				if idx < len(texCache) && texCache[idx] != nil {
					mat.DiffuseTexture = texCache[idx]
					mat.DiffuseTexturingEnabled = true
				}
			}
			roughness := float32(pbr.RoughnessFactorOrDefault())
			metallic := float32(pbr.MetallicFactorOrDefault())
			mat.Shininess = (1.0-roughness)*(1.0-roughness)*128.0 + 1.0
			mat.Specular = metallic*0.7 + 0.1
		}

		if gm.NormalTexture != nil && gm.NormalTexture.Index != nil {
			idx := *gm.NormalTexture.Index
			if idx >= 0 && idx < len(texCache) && texCache[idx] != nil {
				mat.NormalTexture = texCache[idx]
				mat.NormalTexturingEnabled = true
			}
		}

		s.Materials = append(s.Materials, mat)
		matCache[i] = len(s.Materials) - 1
	}
	if len(s.Materials) == 0 {
		s.Materials = append(s.Materials, DefaultMaterial())
	}

	// Accumulate each node's world transform, then bake every primitive's
	// vertices into world space directly (the flat Scene has no node graph
	// to carry transforms at render time).
	worldOf := make([]math.Mat4, len(doc.Nodes))
	var visit func(idx int, parent math.Mat4)
	visit = func(idx int, parent math.Mat4) {
		gn := doc.Nodes[idx]
		local := localNodeMatrix(gn)
		world := local.Mul(parent)
		worldOf[idx] = world
		for _, childIdx := range gn.Children {
			visit(int(childIdx), world)
		}
	}

	roots := []uint32{}
	if doc.Scene != nil && int(*doc.Scene) < len(doc.Scenes) {
		roots = doc.Scenes[*doc.Scene].Nodes
	} else {
		hasParent := make([]bool, len(doc.Nodes))
		for _, gn := range doc.Nodes {
			for _, c := range gn.Children {
				hasParent[c] = true
			}
		}
		for i := range doc.Nodes {
			if !hasParent[i] {
				roots = append(roots, uint32(i))
			}
		}
	}
	for _, r := range roots {
		visit(int(r), math.Mat4Identity())
	}

	for i, gn := range doc.Nodes {
		if gn.Mesh == nil {
			continue
		}
		world := worldOf[i]
		normalMat := world.Inverse().Transpose()
		mesh := doc.Meshes[*gn.Mesh]
		for pi, prim := range mesh.Primitives {
			materialIdx := 0
			if prim.Material != nil && *prim.Material < len(matCache) {
				materialIdx = matCache[*prim.Material]
			}
			if err := appendGLTFPrimitive(s, doc, *prim, world, normalMat, materialIdx); err != nil {
				fmt.Printf("gltf: node %d prim %d: %v\n", i, pi, err)
			}
		}
	}

	return s, nil
}

func localNodeMatrix(gn *gltf.Node) math.Mat4 {
	if gn.Matrix != [16]float64{} {
		m := gn.Matrix
		var out math.Mat4
		for col := 0; col < 4; col++ {
			for row := 0; row < 4; row++ {
				out[col][row] = float32(m[col*4+row])
			}
		}
		return out
	}
	t := gn.TranslationOrDefault()
	r := gn.RotationOrDefault()
	sc := gn.ScaleOrDefault()

	scaleM := math.Mat4Scale(math.Vec3{X: float32(sc[0]), Y: float32(sc[1]), Z: float32(sc[2])})
	rotM := matFromQuaternion(float32(r[0]), float32(r[1]), float32(r[2]), float32(r[3]))
	transM := math.Mat4Translation(math.Vec3{X: float32(t[0]), Y: float32(t[1]), Z: float32(t[2])})
	return scaleM.Mul(rotM).Mul(transM)
}

// matFromQuaternion builds a row-vector rotation matrix (v' = v*M) from a
// glTF quaternion's (x, y, z, w) components. The math package has no
// quaternion type of its own; glTF is the one data source that carries
// rotations this way, so the conversion lives here instead.
func matFromQuaternion(x, y, z, w float32) math.Mat4 {
	m := math.Mat4Identity()
	m[0][0] = 1 - 2*(y*y+z*z)
	m[0][1] = 2 * (x*y + z*w)
	m[0][2] = 2 * (x*z - y*w)
	m[1][0] = 2 * (x*y - z*w)
	m[1][1] = 1 - 2*(x*x+z*z)
	m[1][2] = 2 * (y*z + x*w)
	m[2][0] = 2 * (x*z + y*w)
	m[2][1] = 2 * (y*z - x*w)
	m[2][2] = 1 - 2*(x*x+y*y)
	return m
}

func appendGLTFPrimitive(s *Scene, doc *gltf.Document, prim gltf.Primitive, world, normalMat math.Mat4, materialIdx int) error {
	posIdx, ok := prim.Attributes["POSITION"]
	if !ok {
		return fmt.Errorf("no POSITION attribute")
	}
	positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
	if err != nil {
		return fmt.Errorf("positions: %w", err)
	}

	var normals [][3]float32
	var uvs [][2]float32
	if idx, ok := prim.Attributes["NORMAL"]; ok {
		normals, _ = modeler.ReadNormal(doc, doc.Accessors[idx], nil)
	}
	if idx, ok := prim.Attributes["TEXCOORD_0"]; ok {
		uvs, _ = modeler.ReadTextureCoord(doc, doc.Accessors[idx], nil)
	}

	base := len(s.Vertices)
	for i, p := range positions {
		pos := world.MulVec3(math.Vec3{X: p[0], Y: p[1], Z: p[2]})
		normal := math.Vec3Up
		if i < len(normals) {
			n := normals[i]
			normal = normalMat.MulDir(math.Vec3{X: n[0], Y: n[1], Z: n[2]}).Normalize()
		}
		var u, v float32
		if i < len(uvs) {
			u, v = uvs[i][0], uvs[i][1]
		}
		s.Vertices = append(s.Vertices, pos)
		s.VertexNormals = append(s.VertexNormals, normal)
		s.VertexTextures = append(s.VertexTextures, math.Vec3{X: u, Y: v})
	}

	var indices []uint32
	if prim.Indices != nil {
		indices, err = modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
		if err != nil {
			return fmt.Errorf("indices: %w", err)
		}
	} else {
		indices = make([]uint32, len(positions))
		for i := range indices {
			indices[i] = uint32(i)
		}
	}

	for i := 0; i+2 < len(indices); i += 3 {
		i0 := base + int(indices[i])
		i1 := base + int(indices[i+1])
		i2 := base + int(indices[i+2])
		s.Polygons = append(s.Polygons, Polygon{
			VertexIndices:  [3]int{i0, i1, i2},
			TextureIndices: [3]int{i0, i1, i2},
			NormalIndices:  [3]int{i0, i1, i2},
			MaterialIndex:  materialIdx,
		})
	}
	return nil
}

func loadExternalImage(path string) (*Texture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %q: %w", path, err)
	}
	return decodeImageBytes(path, data)
}

// decodeImageBytes decodes a PNG or JPEG byte slice into an RGBA8 Texture.
func decodeImageBytes(name string, data []byte) (*Texture, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	bounds := img.Bounds()
	rgba := image.NewRGBA(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			rgba.Set(x, y, img.At(x, y))
		}
	}
	return &Texture{
		Name:       name,
		Width:      bounds.Dx(),
		Height:     bounds.Dy(),
		Components: 4,
		Pixels:     rgba.Pix,
	}, nil
}

func byteFromUnitF(f float64) byte {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 255
	}
	return byte(f * 255)
}
