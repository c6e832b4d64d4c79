//go:build cgo

// Package opengl implements the Canvas capability on OpenGL 4.1 core.
// It owns the shader program, vertex/index buffers and any textures
// uploaded through it, and flushes draw lists with scissor clipping.
package opengl

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/quillui/quill"
)

const vertexShaderSource = `
#version 410 core
layout (location = 0) in vec2 aPos;
layout (location = 1) in vec2 aTexCoord;
layout (location = 2) in vec4 aColor;

out vec2 TexCoord;
out vec4 Color;

uniform mat4 projection;

void main() {
    gl_Position = projection * vec4(aPos, 0.0, 1.0);
    TexCoord = aTexCoord;
    Color = aColor;
}
` + "\x00"

// Textured draws sample the R channel as alpha coverage (glyph
// atlases); untextured draws are flat vertex color.
const fragmentShaderSource = `
#version 410 core
in vec2 TexCoord;
in vec4 Color;

out vec4 FragColor;

uniform sampler2D atlasTexture;
uniform bool useTexture;

void main() {
    if (useTexture) {
        FragColor = vec4(Color.rgb, Color.a * texture(atlasTexture, TexCoord).r);
    } else {
        FragColor = Color;
    }
}
` + "\x00"

// Canvas implements quill.Canvas on an OpenGL 4.1 core context. The
// context must be current on the calling thread for every method.
type Canvas struct {
	shader    uint32
	vao, vbo  uint32
	ebo       uint32
	projLoc   int32
	texLoc    int32
	useTexLoc int32

	width  int
	height int

	textures    []uint32 // textures uploaded through this canvas
	initialized bool
}

// NewCanvas returns an uninitialized canvas. Device objects are
// created by Init once a GL context is current.
func NewCanvas() *Canvas {
	return &Canvas{}
}

// Init compiles the shader program and creates the vertex state for
// the given drawable size.
func (c *Canvas) Init(width, height int) error {
	if c.initialized {
		return fmt.Errorf("opengl: canvas already initialized")
	}

	if err := gl.Init(); err != nil {
		return fmt.Errorf("opengl: init bindings: %w", err)
	}

	shader, err := createShaderProgram(vertexShaderSource, fragmentShaderSource)
	if err != nil {
		return fmt.Errorf("opengl: create shader: %w", err)
	}
	c.shader = shader

	c.projLoc = gl.GetUniformLocation(c.shader, gl.Str("projection\x00"))
	c.texLoc = gl.GetUniformLocation(c.shader, gl.Str("atlasTexture\x00"))
	c.useTexLoc = gl.GetUniformLocation(c.shader, gl.Str("useTexture\x00"))

	gl.GenVertexArrays(1, &c.vao)
	gl.BindVertexArray(c.vao)

	gl.GenBuffers(1, &c.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, c.vbo)

	gl.GenBuffers(1, &c.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, c.ebo)

	// Vertex layout: Pos (2 floats) + TexCoord (2 floats) + Color (uint32)
	stride := int32(unsafe.Sizeof(quill.Vertex{}))

	gl.VertexAttribPointerWithOffset(0, 2, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(0)

	gl.VertexAttribPointerWithOffset(1, 2, gl.FLOAT, false, stride, unsafe.Offsetof(quill.Vertex{}.TexCoord))
	gl.EnableVertexAttribArray(1)

	gl.VertexAttribPointerWithOffset(2, 4, gl.UNSIGNED_BYTE, true, stride, unsafe.Offsetof(quill.Vertex{}.Color))
	gl.EnableVertexAttribArray(2)

	gl.BindVertexArray(0)

	c.width = width
	c.height = height
	c.initialized = true

	return nil
}

// Resize updates the backing-store size. A no-op before Init.
func (c *Canvas) Resize(width, height int) {
	if !c.initialized {
		return
	}
	c.width = width
	c.height = height
	gl.Viewport(0, 0, int32(width), int32(height))
}

// Size reports the current drawable size in pixels.
func (c *Canvas) Size() (width, height int) {
	return c.width, c.height
}

// UploadAlphaTexture uploads single-channel alpha coverage pixels and
// returns the texture ID. The canvas owns the texture and deletes it
// on Close.
func (c *Canvas) UploadAlphaTexture(pixels []byte, width, height int) (uint32, error) {
	if !c.initialized {
		return 0, fmt.Errorf("opengl: upload before Init")
	}
	if len(pixels) < width*height {
		return 0, fmt.Errorf("opengl: texture data short: %d bytes for %dx%d", len(pixels), width, height)
	}

	var tex uint32
	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RED, int32(width), int32(height), 0, gl.RED, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	gl.BindTexture(gl.TEXTURE_2D, 0)

	c.textures = append(c.textures, tex)
	return tex, nil
}

// DeleteTexture releases a texture uploaded through this canvas early.
func (c *Canvas) DeleteTexture(id uint32) {
	for i, tex := range c.textures {
		if tex == id {
			gl.DeleteTextures(1, &tex)
			c.textures = append(c.textures[:i], c.textures[i+1:]...)
			return
		}
	}
}

// RenderFrame acquires a pooled draw list, hands it to fn, then
// flushes the accumulated commands and releases the list.
func (c *Canvas) RenderFrame(fn func(dl *quill.DrawList)) error {
	if !c.initialized {
		return fmt.Errorf("opengl: render before Init")
	}

	dl := quill.AcquireDrawList()
	defer quill.ReleaseDrawList(dl)

	fn(dl)
	dl.Finalize()

	if len(dl.VtxBuffer) == 0 {
		return nil
	}

	c.flush(dl)
	return nil
}

func (c *Canvas) flush(dl *quill.DrawList) {
	// Save GL state touched below so the host's own rendering is not
	// disturbed by the overlay pass.
	var lastProgram int32
	var lastBlendSrc, lastBlendDst int32
	var lastScissorBox [4]int32
	gl.GetIntegerv(gl.CURRENT_PROGRAM, &lastProgram)
	gl.GetIntegerv(gl.BLEND_SRC_ALPHA, &lastBlendSrc)
	gl.GetIntegerv(gl.BLEND_DST_ALPHA, &lastBlendDst)
	gl.GetIntegerv(gl.SCISSOR_BOX, &lastScissorBox[0])
	blendEnabled := gl.IsEnabled(gl.BLEND)
	depthEnabled := gl.IsEnabled(gl.DEPTH_TEST)
	cullEnabled := gl.IsEnabled(gl.CULL_FACE)
	scissorEnabled := gl.IsEnabled(gl.SCISSOR_TEST)

	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.Disable(gl.CULL_FACE)
	gl.Disable(gl.DEPTH_TEST)
	gl.Enable(gl.SCISSOR_TEST)

	gl.UseProgram(c.shader)

	proj := orthoMatrix(0, float32(c.width), float32(c.height), 0, -1, 1)
	gl.UniformMatrix4fv(c.projLoc, 1, false, &proj[0])

	gl.ActiveTexture(gl.TEXTURE0)
	gl.Uniform1i(c.texLoc, 0)

	gl.BindVertexArray(c.vao)

	gl.BindBuffer(gl.ARRAY_BUFFER, c.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(dl.VtxBuffer)*int(unsafe.Sizeof(quill.Vertex{})),
		gl.Ptr(dl.VtxBuffer), gl.STREAM_DRAW)

	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, c.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(dl.IdxBuffer)*2,
		gl.Ptr(dl.IdxBuffer), gl.STREAM_DRAW)

	for _, cmd := range dl.CmdBuffer {
		if cmd.ElemCount == 0 {
			continue
		}

		// Scissor box is bottom-left origin, clip rects top-left.
		clipX := int32(cmd.ClipRect[0])
		clipY := int32(float32(c.height) - cmd.ClipRect[3])
		clipW := int32(cmd.ClipRect[2] - cmd.ClipRect[0])
		clipH := int32(cmd.ClipRect[3] - cmd.ClipRect[1])
		if clipX < 0 {
			clipW += clipX
			clipX = 0
		}
		if clipY < 0 {
			clipH += clipY
			clipY = 0
		}
		if clipW <= 0 || clipH <= 0 {
			continue
		}
		gl.Scissor(clipX, clipY, clipW, clipH)

		if cmd.TextureID != 0 {
			gl.BindTexture(gl.TEXTURE_2D, cmd.TextureID)
			gl.Uniform1i(c.useTexLoc, 1)
		} else {
			gl.Uniform1i(c.useTexLoc, 0)
		}

		gl.DrawElementsBaseVertexWithOffset(
			gl.TRIANGLES,
			int32(cmd.ElemCount),
			gl.UNSIGNED_SHORT,
			uintptr(cmd.IndexOffset)*2,
			int32(cmd.VertexOffset),
		)
	}

	// Restore GL state.
	gl.UseProgram(uint32(lastProgram))
	gl.BlendFunc(uint32(lastBlendSrc), uint32(lastBlendDst))
	setEnabled(gl.BLEND, blendEnabled)
	setEnabled(gl.DEPTH_TEST, depthEnabled)
	setEnabled(gl.CULL_FACE, cullEnabled)
	setEnabled(gl.SCISSOR_TEST, scissorEnabled)
	gl.Scissor(lastScissorBox[0], lastScissorBox[1], lastScissorBox[2], lastScissorBox[3])

	gl.BindVertexArray(0)
}

func setEnabled(cap uint32, enabled bool) {
	if enabled {
		gl.Enable(cap)
	} else {
		gl.Disable(cap)
	}
}

// Close releases every device object the canvas owns, including
// textures uploaded through UploadAlphaTexture.
func (c *Canvas) Close() {
	if !c.initialized {
		return
	}

	for _, tex := range c.textures {
		gl.DeleteTextures(1, &tex)
	}
	c.textures = nil

	if c.ebo != 0 {
		gl.DeleteBuffers(1, &c.ebo)
		c.ebo = 0
	}
	if c.vbo != 0 {
		gl.DeleteBuffers(1, &c.vbo)
		c.vbo = 0
	}
	if c.vao != 0 {
		gl.DeleteVertexArrays(1, &c.vao)
		c.vao = 0
	}
	if c.shader != 0 {
		gl.DeleteProgram(c.shader)
		c.shader = 0
	}

	c.initialized = false
}

// createShaderProgram compiles and links a shader program.
func createShaderProgram(vertexSource, fragmentSource string) (uint32, error) {
	vertexShader := gl.CreateShader(gl.VERTEX_SHADER)
	csource, free := gl.Strs(vertexSource)
	gl.ShaderSource(vertexShader, 1, csource, nil)
	free()
	gl.CompileShader(vertexShader)

	var status int32
	gl.GetShaderiv(vertexShader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(vertexShader, gl.INFO_LOG_LENGTH, &logLength)
		log := make([]byte, logLength+1)
		gl.GetShaderInfoLog(vertexShader, logLength, nil, &log[0])
		return 0, fmt.Errorf("vertex shader compilation failed: %s", string(log))
	}

	fragmentShader := gl.CreateShader(gl.FRAGMENT_SHADER)
	csource, free = gl.Strs(fragmentSource)
	gl.ShaderSource(fragmentShader, 1, csource, nil)
	free()
	gl.CompileShader(fragmentShader)

	gl.GetShaderiv(fragmentShader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(fragmentShader, gl.INFO_LOG_LENGTH, &logLength)
		log := make([]byte, logLength+1)
		gl.GetShaderInfoLog(fragmentShader, logLength, nil, &log[0])
		return 0, fmt.Errorf("fragment shader compilation failed: %s", string(log))
	}

	program := gl.CreateProgram()
	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	gl.LinkProgram(program)

	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		log := make([]byte, logLength+1)
		gl.GetProgramInfoLog(program, logLength, nil, &log[0])
		return 0, fmt.Errorf("shader program linking failed: %s", string(log))
	}

	gl.DeleteShader(vertexShader)
	gl.DeleteShader(fragmentShader)

	return program, nil
}

// orthoMatrix creates an orthographic projection matrix.
func orthoMatrix(left, right, bottom, top, near, far float32) [16]float32 {
	return [16]float32{
		2 / (right - left), 0, 0, 0,
		0, 2 / (top - bottom), 0, 0,
		0, 0, -2 / (far - near), 0,
		-(right + left) / (right - left), -(top + bottom) / (top - bottom), -(far + near) / (far - near), 1,
	}
}
