package main

import (
	"fmt"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/veandco/go-sdl2/sdl"
)

const (
	screenW = 256
	screenH = 240
)

// window owns the SDL2 window/GL context and a single full-screen texture
// that each frame's RGBA pixels get uploaded into. Grounded on the
// teacher's window setup (same shader pair, same textured-quad approach);
// adapted to re-upload a full frame every call instead of a generic
// image.RGBA, since the source here is always exactly 256x240.
type window struct {
	*sdl.Window
	context sdl.GLContext
	prog    uint32
	texture uint32
	vao     uint32

	rgba [screenW * screenH * 4]byte
}

func newWindow(title string, scale int) (*window, error) {
	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		return nil, fmt.Errorf("sdl init: %w", err)
	}

	sdl.GLSetAttribute(sdl.GL_CONTEXT_MAJOR_VERSION, 3)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_MINOR_VERSION, 3)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_PROFILE_MASK, sdl.GL_CONTEXT_PROFILE_CORE)

	w, err := sdl.CreateWindow(title,
		sdl.WINDOWPOS_CENTERED, sdl.WINDOWPOS_CENTERED,
		int32(screenW*scale), int32(screenH*scale),
		sdl.WINDOW_OPENGL|sdl.WINDOW_SHOWN|sdl.WINDOW_RESIZABLE)
	if err != nil {
		return nil, fmt.Errorf("create window: %w", err)
	}

	ctx, err := w.GLCreateContext()
	if err != nil {
		return nil, fmt.Errorf("create gl context: %w", err)
	}
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("init gl: %w", err)
	}

	var texture uint32
	gl.GenTextures(1, &texture)
	gl.BindTexture(gl.TEXTURE_2D, texture)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)

	vert, err := compileShader(vertexShaderSource, gl.VERTEX_SHADER)
	if err != nil {
		return nil, fmt.Errorf("vertex shader: %w", err)
	}
	frag, err := compileShader(fragmentShaderSource, gl.FRAGMENT_SHADER)
	if err != nil {
		return nil, fmt.Errorf("fragment shader: %w", err)
	}
	prog, err := linkProgram(vert, frag)
	if err != nil {
		return nil, fmt.Errorf("link program: %w", err)
	}

	var vbo, vao, ebo uint32
	gl.GenVertexArrays(1, &vao)
	gl.GenBuffers(1, &vbo)
	gl.GenBuffers(1, &ebo)

	gl.BindVertexArray(vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(quadVertices)*4, gl.Ptr(quadVertices), gl.STATIC_DRAW)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(quadIndices)*4, gl.Ptr(quadIndices), gl.STATIC_DRAW)

	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, 5*4, 0)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(1, 2, gl.FLOAT, false, 5*4, 3*4)
	gl.EnableVertexAttribArray(1)
	gl.BindVertexArray(0)

	return &window{Window: w, context: ctx, prog: prog, texture: texture, vao: vao}, nil
}

// DrawFrame converts an indexed 256x240 frame through masterPalette and
// presents it.
func (w *window) DrawFrame(frame *[screenW * screenH]uint8) {
	for i, idx := range frame {
		c := masterPalette[idx&0x3F]
		w.rgba[i*4+0] = c[0]
		w.rgba[i*4+1] = c[1]
		w.rgba[i*4+2] = c[2]
		w.rgba[i*4+3] = 255
	}

	gl.Viewport(0, 0, int32(w.winWidth()), int32(w.winHeight()))
	gl.ClearColor(0, 0, 0, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT)

	gl.BindTexture(gl.TEXTURE_2D, w.texture)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, screenW, screenH, 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(&w.rgba[0]))

	gl.UseProgram(w.prog)
	gl.BindVertexArray(w.vao)
	gl.DrawElements(gl.TRIANGLES, int32(len(quadIndices)), gl.UNSIGNED_INT, nil)

	w.GLSwap()
}

func (w *window) winWidth() int32  { ww, _ := w.GetSize(); return ww }
func (w *window) winHeight() int32 { _, wh := w.GetSize(); return wh }

func (w *window) Close() {
	if w.context != nil {
		sdl.GLDeleteContext(w.context)
	}
	w.Destroy()
	sdl.Quit()
}

var quadVertices = []float32{
	1.0, 1.0, 0, 1, 0,
	1.0, -1.0, 0, 1, 1,
	-1.0, -1.0, 0, 0, 1,
	-1.0, 1.0, 0, 0, 0,
}

var quadIndices = []uint32{0, 1, 3, 1, 2, 3}

const vertexShaderSource = `
#version 330 core
layout (location = 0) in vec3 aPos;
layout (location = 1) in vec2 aTexCoord;
out vec2 TexCoord;
void main() {
    gl_Position = vec4(aPos, 1.0);
    TexCoord = aTexCoord;
}
` + "\x00"

const fragmentShaderSource = `
#version 330 core
out vec4 FragColor;
in vec2 TexCoord;
uniform sampler2D ourTexture;
void main() {
    FragColor = texture(ourTexture, TexCoord);
}
` + "\x00"

func compileShader(source string, shaderType uint32) (uint32, error) {
	sh := gl.CreateShader(shaderType)
	csrc, free := gl.Strs(source)
	gl.ShaderSource(sh, 1, csrc, nil)
	free()
	gl.CompileShader(sh)

	var status int32
	gl.GetShaderiv(sh, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(sh, gl.INFO_LOG_LENGTH, &logLength)
		buf := make([]byte, logLength+1)
		gl.GetShaderInfoLog(sh, logLength, nil, &buf[0])
		return 0, fmt.Errorf("%s", string(buf))
	}
	return sh, nil
}

func linkProgram(vertexShader, fragmentShader uint32) (uint32, error) {
	prg := gl.CreateProgram()
	gl.AttachShader(prg, vertexShader)
	gl.AttachShader(prg, fragmentShader)
	gl.LinkProgram(prg)

	var status int32
	gl.GetProgramiv(prg, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		var glLog [256]byte
		gl.GetProgramInfoLog(prg, int32(len(glLog)), &logLength, &glLog[0])
		return 0, fmt.Errorf("%s", string(glLog[:logLength]))
	}

	gl.DeleteShader(vertexShader)
	gl.DeleteShader(fragmentShader)
	return prg, nil
}
