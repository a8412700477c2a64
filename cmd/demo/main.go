package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"

	gl "github.com/go-gl/gl/v4.1-core/gl"

	"render-engine/core"
	"render-engine/internal/opengl"
	ioload "render-engine/io"
	"render-engine/rasterpipe"
	"render-engine/scene"
)

func main() {
	var (
		width        = pflag.Int("width", 1024, "window width in pixels")
		height       = pflag.Int("height", 768, "window height in pixels")
		scenePath    = pflag.String("scene", "", "path to a .obj or .gltf/.glb scene file (default: a built-in cube)")
		shadingName  = pflag.String("shading", "phong", "shading model: none, lambertian, phong")
		animName     = pflag.String("animation", "y", "model animation: none, x, y, z, carousel")
		zbuffer      = pflag.Bool("zbuffer", true, "enable z-buffered rasterized fill")
		backfaceCull = pflag.Bool("backface-cull", true, "cull back-facing polygons")
		wireframe    = pflag.Bool("wireframe", false, "draw the polygon mesh wireframe")
		fill         = pflag.Bool("fill", true, "draw rasterized polygon fills")
		axes         = pflag.Bool("axes", true, "draw the world axes gizmo")
		fovy         = pflag.Float32("fovy", 30, "vertical field of view, degrees")
		vsync        = pflag.Bool("vsync", true, "enable vertical sync")
	)
	pflag.Parse()

	sc, err := loadOrBuildScene(*scenePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "demo: %v\n", err)
		os.Exit(1)
	}

	window, err := core.NewGLWindow(core.WindowConfig{
		Width:     *width,
		Height:    *height,
		Title:     "render-engine demo",
		Resizable: true,
		VSync:     *vsync,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "demo: %v\n", err)
		os.Exit(1)
	}
	defer window.Destroy()

	if err := gl.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "demo: init GL: %v\n", err)
		os.Exit(1)
	}

	blitter, err := opengl.NewFramebufferBlitter()
	if err != nil {
		fmt.Fprintf(os.Stderr, "demo: %v\n", err)
		os.Exit(1)
	}
	defer blitter.Close()

	pipeline := rasterpipe.NewPipeline(sc)
	pipeline.FOVYDegrees = *fovy
	pipeline.Flags = rasterpipe.Flags{
		DrawMesh:               *wireframe,
		RasterizeFill:          *fill,
		ZBufferEnabled:         *zbuffer,
		BackfaceCullingEnabled: *backfaceCull,
		DrawWorldAxes:          *axes,
	}
	pipeline.SetShadingModel(shadingModelFor(*shadingName))
	pipeline.SetAnimationType(animationKindFor(*animName))
	pipeline.Lights = []*rasterpipe.LightSource{rasterpipe.NewLightSource()}

	var dragging bool
	var lastX, lastY float64

	for !window.ShouldClose() {
		window.PollEvents()

		if window.IsKeyPressed(core.KeyEscape) {
			break
		}
		switch {
		case window.IsKeyPressed(core.KeyX):
			pipeline.SetXCameraView()
		case window.IsKeyPressed(core.KeyY):
			pipeline.SetYCameraView()
		case window.IsKeyPressed(core.KeyZ):
			pipeline.SetZCameraView()
		}

		curX, curY := window.GetCursorPos()
		if window.IsMouseButtonPressed(0) {
			if dragging {
				pipeline.UpdateCameraPosition(int(curX-lastX), int(curY-lastY))
			}
			dragging = true
		} else {
			dragging = false
		}
		lastX, lastY = curX, curY

		fbWidth, fbHeight := window.GetFramebufferSize()
		if fbWidth == 0 || fbHeight == 0 {
			continue
		}

		frame := pipeline.DoRender(fbWidth, fbHeight)
		buf := make([]byte, fbWidth*fbHeight*4)
		if err := frame.CopyTo(buf); err != nil {
			fmt.Fprintf(os.Stderr, "demo: %v\n", err)
			continue
		}

		gl.Viewport(0, 0, int32(fbWidth), int32(fbHeight))
		gl.ClearColor(0, 0, 0, 1)
		gl.Clear(gl.COLOR_BUFFER_BIT)
		if err := blitter.UploadFrame(fbWidth, fbHeight, buf); err != nil {
			fmt.Fprintf(os.Stderr, "demo: %v\n", err)
			continue
		}
		blitter.Draw()

		window.SwapBuffers()
		time.Sleep(time.Millisecond)
	}
}

// loadOrBuildScene loads the scene at path (dispatching on its extension),
// or appends a default cube to a fresh scene when path is empty.
func loadOrBuildScene(path string) (*scene.Scene, error) {
	if path == "" {
		s := scene.NewScene()
		scene.CreateCube(s, 3, 0)
		return s, nil
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".obj":
		return ioload.LoadOBJ(path)
	case ".gltf", ".glb":
		return scene.LoadGLTF(path)
	default:
		return nil, fmt.Errorf("unrecognized scene file extension %q", filepath.Ext(path))
	}
}

func shadingModelFor(name string) rasterpipe.ShadingModel {
	switch strings.ToLower(name) {
	case "lambertian":
		return rasterpipe.LambertianModel{}
	case "phong":
		return rasterpipe.PhongModel{}
	default:
		return rasterpipe.NoShadingModel{}
	}
}

func animationKindFor(name string) rasterpipe.AnimationKind {
	switch strings.ToLower(name) {
	case "x":
		return rasterpipe.XAnimation
	case "y":
		return rasterpipe.YAnimation
	case "z":
		return rasterpipe.ZAnimation
	case "carousel":
		return rasterpipe.CarouselAnimation
	default:
		return rasterpipe.NoAnimation
	}
}
