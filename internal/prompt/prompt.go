// Package prompt builds the natural-language instruction sent to the vision
// model from the user's language, detail, length, and style preferences.
package prompt

import "strings"

var languageInstructions = map[string]string{
	"english": "Please respond in English.",
	"czech":   "Please respond in Czech (České).",
	"polish":  "Please respond in Polish (Polski).",
	"german":  "Please respond in German (Deutsch).",
}

// Each style paragraph is tuned for a distinct downstream image generator's
// prompt conventions.
var styleInstructions = map[string]string{
	"basic-ai-image-generator": "Describe the image as a clear, plain prompt for a general-purpose AI image generator. " +
		"Write full sentences covering the subject, setting, colors, and composition so the description could recreate the image.",
	"midjourney": "Describe the image as a Midjourney prompt: a single line of comma-separated descriptive tags and phrases, " +
		"no more than 40 words in total. Start with the main subject, then style, lighting, color palette, and camera or render hints.",
	"flux1": "Describe the image as a Flux.1 prompt: flowing natural language organized from the main subject outward. " +
		"First name the subject and its action, then the environment, then lighting and atmosphere, then artistic style, all in connected prose.",
	"gpt-image": "Describe the image as a GPT-Image prompt: technical and systematic. " +
		"Enumerate the subject, exact placement and proportions within the frame, color values, lighting direction, perspective, and rendering style in precise, unambiguous terms.",
	"imagen4": "Describe the image as an Imagen prompt: poetic and sensory. " +
		"Evoke the mood, textures, light, and atmosphere of the scene in rich, evocative language while still naming the concrete subject and setting.",
}

var detailNames = map[string]string{
	"brief":     "brief",
	"detailed":  "detailed",
	"extensive": "comprehensive",
}

var lengthInstructions = map[string]string{
	"short":  "Keep the output short, around 30 to 50 words.",
	"normal": "Aim for a normal length output of roughly 80 to 120 words.",
	"long":   "Produce a long output of roughly 150 to 250 words.",
}

// Compose maps the four settings axes to the instruction string sent to the
// model. Unrecognized values fall back to the documented defaults, so the
// output is always well-formed and deterministic for a given input tuple.
func Compose(language, detailLevel, outputLength, outputStyle string) string {
	langInstruction, ok := languageInstructions[language]
	if !ok {
		langInstruction = languageInstructions["english"]
	}

	styleInstruction, ok := styleInstructions[outputStyle]
	if !ok {
		styleInstruction = styleInstructions["basic-ai-image-generator"]
	}

	detailName, ok := detailNames[detailLevel]
	if !ok {
		detailName = detailNames["detailed"]
	}

	lengthInstruction, ok := lengthInstructions[outputLength]
	if !ok {
		lengthInstruction = lengthInstructions["normal"]
	}

	var b strings.Builder
	b.WriteString(langInstruction)
	b.WriteString(" ")
	b.WriteString(styleInstruction)
	b.WriteString(" Provide a ")
	b.WriteString(detailName)
	b.WriteString(" description of the image. ")
	b.WriteString(lengthInstruction)
	return b.String()
}
