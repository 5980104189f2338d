package engine

// Shader sources for the street renderer

// Vertex shader shared by solid geometry, particles and the panel
const sceneVertexShaderSource = `
#version 410 core
layout (location = 0) in vec3 aPos;
layout (location = 1) in vec3 aNormal;

uniform mat4 projection;
uniform mat4 view;
uniform mat4 model;
uniform float pointSize;

out vec3 Normal;
out float EyeDistance;

void main() {
    vec4 eye = view * model * vec4(aPos, 1.0);
    Normal = mat3(transpose(inverse(model))) * aNormal;
    EyeDistance = length(eye.xyz);
    gl_PointSize = pointSize;
    gl_Position = projection * eye;
}
`

// Fragment shader: one directional light plus exponential fog
const sceneFragmentShaderSource = `
#version 410 core
in vec3 Normal;
in float EyeDistance;
out vec4 FragColor;

uniform vec3 objectColor;
uniform vec3 emission;
uniform vec3 lightDirection;
uniform vec3 lightColor;
uniform float ambient;
uniform bool lit;
uniform vec4 fogColor;
uniform float fogDensity;

void main() {
    vec3 color = objectColor;
    if (lit) {
        float diffuse = max(dot(normalize(Normal), normalize(lightDirection)), 0.0);
        color = objectColor * (ambient + diffuse * lightColor) + emission;
    }

    float fog = clamp(exp(-fogDensity * EyeDistance), 0.0, 1.0);
    FragColor = vec4(mix(fogColor.rgb, color, fog), 1.0);
}
`
