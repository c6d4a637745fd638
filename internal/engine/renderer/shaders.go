package renderer

// Instanced mesh program. Instances place and scale a unit mesh; normals
// are divided by the scale so stretched prisms still light correctly.
const meshVertexShader = `
#version 410 core

layout (location = 0) in vec3 a_position;
layout (location = 1) in vec3 a_normal;
layout (location = 2) in vec3 i_position;
layout (location = 3) in vec3 i_scale;

uniform mat4 u_camera;

out vec3 v_world;
out vec3 v_normal;

void main() {
	vec3 world = i_position + a_position * i_scale;
	v_world = world;
	v_normal = normalize(a_normal / i_scale);
	gl_Position = u_camera * vec4(world, 1.0);
}
`

const meshFragmentShader = `
#version 410 core

in vec3 v_world;
in vec3 v_normal;

uniform vec3 u_camera_position;
uniform float u_time;
uniform vec3 u_color;

out vec4 frag_color;

void main() {
	vec3 light = normalize(vec3(cos(u_time * 0.1), 0.8, sin(u_time * 0.1)));
	vec3 n = normalize(v_normal);
	float diffuse = max(dot(n, light), 0.0);

	vec3 view = normalize(u_camera_position - v_world);
	float rim = pow(1.0 - max(dot(n, view), 0.0), 3.0);

	vec3 color = u_color * (0.25 + 0.75 * diffuse) + vec3(0.15) * rim;
	frag_color = vec4(color, 1.0);
}
`

// Overlay quad. Corners come from gl_VertexID as a triangle strip.
const overlayVertexShader = `
#version 410 core

uniform vec4 u_rect;
uniform vec2 u_uv_scale;

out vec2 v_uv;

void main() {
	vec2 corner = vec2(gl_VertexID & 1, gl_VertexID >> 1);
	v_uv = corner * u_uv_scale;
	gl_Position = vec4(u_rect.x + corner.x * u_rect.z, u_rect.y - corner.y * u_rect.w, 0.0, 1.0);
}
`

const overlayFragmentShader = `
#version 410 core

in vec2 v_uv;

uniform sampler2D u_texture;

out vec4 frag_color;

void main() {
	frag_color = texture(u_texture, v_uv);
}
`
