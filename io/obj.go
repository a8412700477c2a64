// Package io loads scene and texture data from disk into the flat table
// model the rendering core consumes. It never touches the core's render
// path directly; it only produces scene.Scene and scene.Texture values.
package io

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"render-engine/core"
	"render-engine/math"
	"render-engine/scene"
)

// objFaceVertex is one "v/vt/vn" token, 0-based, -1 meaning absent.
type objFaceVertex struct {
	v, vt, vn int
}

// LoadOBJ parses a Wavefront .obj file (and its companion .mtl, if
// referenced via "mtllib") into a single flat Scene. Quads are split per
// the scene package's quad-split rule; faces with more than 4 vertices are
// rejected since the original format this renderer targets never emits them.
func LoadOBJ(path string) (*scene.Scene, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open obj %q: %w", path, err)
	}
	defer f.Close()

	dir := filepath.Dir(path)

	var positions []math.Vec3
	var normals []math.Vec3
	var uvs []math.Vec3

	s := scene.NewScene()
	materialIndex := map[string]int{}
	curMaterial := 0

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "v":
			if len(fields) < 4 {
				continue
			}
			x, _ := strconv.ParseFloat(fields[1], 32)
			y, _ := strconv.ParseFloat(fields[2], 32)
			z, _ := strconv.ParseFloat(fields[3], 32)
			positions = append(positions, math.Vec3{X: float32(x), Y: float32(y), Z: float32(z)})

		case "vn":
			if len(fields) < 4 {
				continue
			}
			x, _ := strconv.ParseFloat(fields[1], 32)
			y, _ := strconv.ParseFloat(fields[2], 32)
			z, _ := strconv.ParseFloat(fields[3], 32)
			normals = append(normals, math.Vec3{X: float32(x), Y: float32(y), Z: float32(z)})

		case "vt":
			if len(fields) < 3 {
				continue
			}
			u, _ := strconv.ParseFloat(fields[1], 32)
			v, _ := strconv.ParseFloat(fields[2], 32)
			uvs = append(uvs, math.Vec3{X: float32(u), Y: float32(v)})

		case "usemtl":
			if len(fields) > 1 {
				if idx, ok := materialIndex[fields[1]]; ok {
					curMaterial = idx
				}
			}

		case "mtllib":
			if len(fields) > 1 {
				mtlPath := filepath.Join(dir, fields[1])
				if err := loadMTL(mtlPath, dir, s, materialIndex); err != nil {
					return nil, fmt.Errorf("load mtl %q: %w", mtlPath, err)
				}
			}

		case "f":
			if len(fields) < 4 {
				continue
			}
			verts := make([]objFaceVertex, 0, len(fields)-1)
			for _, tok := range fields[1:] {
				verts = append(verts, parseFaceVertex(tok))
			}
			if err := appendFace(s, verts, curMaterial); err != nil {
				return nil, fmt.Errorf("parse face %q: %w", line, err)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan obj: %w", err)
	}

	if len(positions) == 0 {
		return nil, fmt.Errorf("no geometry found in %q", path)
	}

	s.Vertices = positions
	s.VertexNormals = normals
	s.VertexTextures = uvs

	if err := generateMissingNormals(s); err != nil {
		return nil, err
	}
	return s, nil
}

// appendFace records a triangle (or splits a quad) directly against the
// scene's polygon list. Faces of 5+ vertices are rejected.
func appendFace(s *scene.Scene, verts []objFaceVertex, materialIdx int) error {
	switch len(verts) {
	case 3:
		s.Polygons = append(s.Polygons, scene.Polygon{
			VertexIndices:  [3]int{verts[0].v, verts[1].v, verts[2].v},
			TextureIndices: [3]int{verts[0].vt, verts[1].vt, verts[2].vt},
			NormalIndices:  [3]int{verts[0].vn, verts[1].vn, verts[2].vn},
			MaterialIndex:  materialIdx,
		})
	case 4:
		vIdx := []int{verts[0].v, verts[1].v, verts[2].v, verts[3].v}
		tIdx := []int{verts[0].vt, verts[1].vt, verts[2].vt, verts[3].vt}
		nIdx := []int{verts[0].vn, verts[1].vn, verts[2].vn, verts[3].vn}
		tris := scene.SplitQuad(vIdx, tIdx, nIdx, materialIdx)
		s.Polygons = append(s.Polygons, tris[0], tris[1])
	default:
		return fmt.Errorf("unsupported face vertex count %d (only triangles and quads)", len(verts))
	}
	return nil
}

// parseFaceVertex parses one face vertex token: "v", "v/vt", "v//vn", "v/vt/vn".
// Returns 0-based indices (-1 if absent). OBJ indices are 1-based.
func parseFaceVertex(tok string) objFaceVertex {
	parseIdx := func(s string) int {
		if s == "" {
			return -1
		}
		n, _ := strconv.Atoi(s)
		if n > 0 {
			return n - 1
		}
		return -1
	}
	parts := strings.Split(tok, "/")
	res := objFaceVertex{v: -1, vt: -1, vn: -1}
	if len(parts) > 0 {
		res.v = parseIdx(parts[0])
	}
	if len(parts) > 1 {
		res.vt = parseIdx(parts[1])
	}
	if len(parts) > 2 {
		res.vn = parseIdx(parts[2])
	}
	return res
}

// generateMissingNormals fills every polygon's NormalIndices with a
// synthesized per-vertex, area-weighted flat normal when the file had no
// "vn" directives at all.
func generateMissingNormals(s *scene.Scene) error {
	if len(s.VertexNormals) > 0 {
		return nil
	}
	accum := make([]math.Vec3, len(s.Vertices))
	for i, p := range s.Polygons {
		i0, i1, i2 := p.VertexIndices[0], p.VertexIndices[1], p.VertexIndices[2]
		nv := len(s.Vertices)
		if i0 < 0 || i1 < 0 || i2 < 0 || i0 >= nv || i1 >= nv || i2 >= nv {
			return fmt.Errorf("polygon %d references out-of-range vertex index", i)
		}
		v0, v1, v2 := s.Vertices[i0], s.Vertices[i1], s.Vertices[i2]
		n := v1.Sub(v0).Cross(v2.Sub(v0))
		accum[i0] = accum[i0].Add(n)
		accum[i1] = accum[i1].Add(n)
		accum[i2] = accum[i2].Add(n)
	}
	s.VertexNormals = make([]math.Vec3, len(s.Vertices))
	for i := range s.VertexNormals {
		s.VertexNormals[i] = accum[i].Normalize()
	}
	for i := range s.Polygons {
		s.Polygons[i].NormalIndices = s.Polygons[i].VertexIndices
	}
	return nil
}

// loadMTL parses a Wavefront .mtl file, appending each material it finds to
// the scene's material table and recording its name -> index mapping.
func loadMTL(path, dir string, s *scene.Scene, index map[string]int) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	var cur *scene.Material

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "newmtl":
			if len(fields) > 1 {
				m := scene.DefaultMaterial()
				m.Name = fields[1]
				s.Materials = append(s.Materials, m)
				index[fields[1]] = len(s.Materials) - 1
				cur = m
			}
		case "Kd":
			if cur != nil && len(fields) >= 4 {
				r, _ := strconv.ParseFloat(fields[1], 32)
				g, _ := strconv.ParseFloat(fields[2], 32)
				b, _ := strconv.ParseFloat(fields[3], 32)
				cur.Albedo = core.Color{A: 0xFF, R: byteFromUnit(r), G: byteFromUnit(g), B: byteFromUnit(b)}
			}
		case "Ns":
			if cur != nil && len(fields) >= 2 {
				ns, _ := strconv.ParseFloat(fields[1], 32)
				if ns < 1 {
					ns = 1
				}
				cur.Shininess = float32(ns)
			}
		case "map_Kd":
			if cur != nil && len(fields) >= 2 {
				texPath := filepath.Join(dir, fields[1])
				tex, err := LoadTextureFile(texPath)
				if err == nil {
					cur.DiffuseTexture = tex
					cur.DiffuseTexturingEnabled = true
					s.Textures = append(s.Textures, tex)
				}
			}
		}
	}

	return scanner.Err()
}

func byteFromUnit(f float64) byte {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 255
	}
	return byte(f * 255)
}
