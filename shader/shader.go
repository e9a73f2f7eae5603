package shader

// ────────────────────────────────── Desktop GL ──────────────────────────────────

const cubeVertexSourceGL = `#version 410 core
layout (location = 0) in vec3 aPos;
layout (location = 1) in vec2 aTexCoord;

out vec2 TexCoord;

uniform mat4 model;
uniform mat4 view;
uniform mat4 projection;

void main()
{
    gl_Position = projection * view * model * vec4(aPos, 1.0);
    TexCoord = aTexCoord;
}
`

const cubeFragmentSourceGL = `#version 410 core
in vec2 TexCoord;
out vec4 FragColor;

uniform sampler2D texture1;
uniform sampler2D texture2;

void main()
{
    FragColor = mix(texture(texture1, TexCoord), texture(texture2, TexCoord), 0.2);
}
`

// ──────────────────────────────────── GLES ──────────────────────────────────────

const cubeVertexSourceGLES = `#version 300 es
precision highp float;
layout (location = 0) in vec3 aPos;
layout (location = 1) in vec2 aTexCoord;

out vec2 TexCoord;

uniform mat4 model;
uniform mat4 view;
uniform mat4 projection;

void main()
{
    gl_Position = projection * view * model * vec4(aPos, 1.0);
    TexCoord = aTexCoord;
}
`

const cubeFragmentSourceGLES = `#version 300 es
precision mediump float;
in vec2 TexCoord;
out vec4 FragColor;

uniform sampler2D texture1;
uniform sampler2D texture2;

void main()
{
    FragColor = mix(texture(texture1, TexCoord), texture(texture2, TexCoord), 0.2);
}
`

// ────────────────────────────────── Public API ─────────────────────────────────

// DefaultVertexSource returns the built-in cube vertex shader. The GLES variant
// is GLSL ES 3.00 and is meant to go through the translator.
func DefaultVertexSource(isGLES bool) string {
	if isGLES {
		return cubeVertexSourceGLES
	}
	return cubeVertexSourceGL
}

// DefaultFragmentSource returns the built-in cube fragment shader.
func DefaultFragmentSource(isGLES bool) string {
	if isGLES {
		return cubeFragmentSourceGLES
	}
	return cubeFragmentSourceGL
}
