// Package opengl holds the thin presentation-layer glue between the CPU
// rasterizer's output and a window. The core render path never imports this
// package; it only produces a BGRA byte buffer that FramebufferBlitter turns
// into pixels on screen.
package opengl

import (
	"fmt"
	"unsafe"

	gl "github.com/go-gl/gl/v4.1-core/gl"
)

// FramebufferBlitter owns the single GPU texture and full-screen quad used
// to present a CPU-rendered frame. Every call must happen on the goroutine
// that owns the current GL context.
type FramebufferBlitter struct {
	texID uint32
	vao   uint32
	vbo   uint32
	prog  uint32
	w, h  int32
}

const blitVertexShader = `#version 410 core
layout(location = 0) in vec2 aPos;
layout(location = 1) in vec2 aUV;
out vec2 vUV;
void main() {
    vUV = aUV;
    gl_Position = vec4(aPos, 0.0, 1.0);
}
` + "\x00"

const blitFragmentShader = `#version 410 core
in vec2 vUV;
out vec4 fragColor;
uniform sampler2D uFrame;
void main() {
    fragColor = texture(uFrame, vUV);
}
` + "\x00"

// NewFramebufferBlitter compiles the blit shader and allocates the GPU
// texture that UploadFrame uploads into. Must run with a current GL context.
func NewFramebufferBlitter() (*FramebufferBlitter, error) {
	prog, err := linkBlitProgram()
	if err != nil {
		return nil, fmt.Errorf("blit program: %w", err)
	}

	b := &FramebufferBlitter{prog: prog}

	gl.GenTextures(1, &b.texID)
	gl.BindTexture(gl.TEXTURE_2D, b.texID)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	// Two triangles covering clip space, UV flipped vertically since the
	// CPU framebuffer's row 0 is the top of the image.
	quad := []float32{
		-1, -1, 0, 1,
		1, -1, 1, 1,
		1, 1, 1, 0,
		-1, -1, 0, 1,
		1, 1, 1, 0,
		-1, 1, 0, 0,
	}
	gl.GenVertexArrays(1, &b.vao)
	gl.GenBuffers(1, &b.vbo)
	gl.BindVertexArray(b.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(quad)*4, unsafe.Pointer(&quad[0]), gl.STATIC_DRAW)
	gl.VertexAttribPointerWithOffset(0, 2, gl.FLOAT, false, 4*4, 0)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(1, 2, gl.FLOAT, false, 4*4, 2*4)
	gl.EnableVertexAttribArray(1)
	gl.BindVertexArray(0)

	return b, nil
}

// UploadFrame copies a BGRA8 byte buffer of size width*height*4 to the GPU
// texture. width/height must match the rasterizer's framebuffer dimensions.
func (b *FramebufferBlitter) UploadFrame(width, height int, bgra []byte) error {
	if len(bgra) < width*height*4 {
		return fmt.Errorf("frame buffer too small: have %d bytes, need %d", len(bgra), width*height*4)
	}
	gl.BindTexture(gl.TEXTURE_2D, b.texID)
	if int32(width) != b.w || int32(height) != b.h {
		gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(width), int32(height), 0, gl.BGRA, gl.UNSIGNED_BYTE, unsafe.Pointer(&bgra[0]))
		b.w, b.h = int32(width), int32(height)
	} else {
		gl.TexSubImage2D(gl.TEXTURE_2D, 0, 0, 0, int32(width), int32(height), gl.BGRA, gl.UNSIGNED_BYTE, unsafe.Pointer(&bgra[0]))
	}
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return nil
}

// Draw renders the uploaded frame as a full-screen textured quad.
func (b *FramebufferBlitter) Draw() {
	gl.UseProgram(b.prog)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, b.texID)
	gl.BindVertexArray(b.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, 6)
	gl.BindVertexArray(0)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	gl.UseProgram(0)
}

// Close frees the GPU resources owned by the blitter.
func (b *FramebufferBlitter) Close() {
	if b.texID != 0 {
		gl.DeleteTextures(1, &b.texID)
	}
	if b.vbo != 0 {
		gl.DeleteBuffers(1, &b.vbo)
	}
	if b.vao != 0 {
		gl.DeleteVertexArrays(1, &b.vao)
	}
	if b.prog != 0 {
		gl.DeleteProgram(b.prog)
	}
}

func linkBlitProgram() (uint32, error) {
	vs, err := compileShader(blitVertexShader, gl.VERTEX_SHADER)
	if err != nil {
		return 0, err
	}
	fs, err := compileShader(blitFragmentShader, gl.FRAGMENT_SHADER)
	if err != nil {
		return 0, err
	}
	prog := gl.CreateProgram()
	gl.AttachShader(prog, vs)
	gl.AttachShader(prog, fs)
	gl.LinkProgram(prog)

	var status int32
	gl.GetProgramiv(prog, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(prog, gl.INFO_LOG_LENGTH, &logLen)
		log := make([]byte, logLen+1)
		gl.GetProgramInfoLog(prog, logLen, nil, &log[0])
		return 0, fmt.Errorf("link: %s", string(log))
	}
	gl.DeleteShader(vs)
	gl.DeleteShader(fs)
	return prog, nil
}

func compileShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csource, free := gl.Strs(source)
	gl.ShaderSource(shader, 1, csource, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
		log := make([]byte, logLen+1)
		gl.GetShaderInfoLog(shader, logLen, nil, &log[0])
		return 0, fmt.Errorf("compile: %s", string(log))
	}
	return shader, nil
}
