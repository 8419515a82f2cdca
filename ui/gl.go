package ui

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v3.3-core/gl"
)

// A fullscreen textured quad; the console's RGBA frame is uploaded as a
// 256x224 2D texture each vsync.

const (
	frameWidth  = 256
	frameHeight = 224
)

const vertexShaderSource = `
#version 330 core
out vec2 uv;
void main() {
	vec2 pos[4] = vec2[](vec2(-1.0, 1.0), vec2(1.0, 1.0), vec2(-1.0, -1.0), vec2(1.0, -1.0));
	vec2 tex[4] = vec2[](vec2(0.0, 0.0), vec2(1.0, 0.0), vec2(0.0, 1.0), vec2(1.0, 1.0));
	gl_Position = vec4(pos[gl_VertexID], 0.0, 1.0);
	uv = tex[gl_VertexID];
}
` + "\x00"

const fragmentShaderSource = `
#version 330 core
in vec2 uv;
out vec4 color;
uniform sampler2D frame;
void main() {
	color = texture(frame, uv);
}
` + "\x00"

func compileShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csources, free := gl.Strs(source)
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)
	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))
		return 0, fmt.Errorf("failed to compile shader: %v", log)
	}
	return shader, nil
}

// newProgram builds the blit pipeline and the frame texture.
func newProgram() (uint32, error) {
	vertexShader, err := compileShader(vertexShaderSource, gl.VERTEX_SHADER)
	if err != nil {
		return 0, err
	}
	fragmentShader, err := compileShader(fragmentShaderSource, gl.FRAGMENT_SHADER)
	if err != nil {
		return 0, err
	}
	program := gl.CreateProgram()
	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	gl.LinkProgram(program)
	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		return 0, fmt.Errorf("failed to link program")
	}
	gl.DeleteShader(vertexShader)
	gl.DeleteShader(fragmentShader)

	var vao uint32
	gl.GenVertexArrays(1, &vao)
	gl.BindVertexArray(vao)

	var texture uint32
	gl.GenTextures(1, &texture)
	gl.BindTexture(gl.TEXTURE_2D, texture)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, frameWidth, frameHeight, 0,
		gl.RGBA, gl.UNSIGNED_BYTE, nil)
	return program, nil
}

// updateTexture uploads the frame and draws the quad.
func updateTexture(program uint32, rgba []byte) {
	gl.TexSubImage2D(gl.TEXTURE_2D, 0, 0, 0, frameWidth, frameHeight,
		gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(rgba))
	gl.Clear(gl.COLOR_BUFFER_BIT)
	gl.DrawArrays(gl.TRIANGLE_STRIP, 0, 4)
}
