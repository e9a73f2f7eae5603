package translator

import (
	"context"
	"fmt"

	gst "github.com/richinsley/goshadertranslator"
)

var translator *gst.ShaderTranslator

// GetTranslator lazily creates the shared shader translator.
func GetTranslator() *gst.ShaderTranslator {
	if translator == nil {
		ctx := context.Background()
		translator, _ = gst.NewShaderTranslator(ctx)
	}
	return translator
}

// Translated is a GLSL 4.10 program pair produced from GLSL ES 3.00 sources.
type Translated struct {
	Vertex   string
	Fragment string
	// Aliases maps declared uniform names to the names the translator gave
	// them in the output.
	Aliases map[string]string
}

// TranslatePair translates an ESSL vertex and fragment source to desktop GLSL.
func TranslatePair(vertexSource, fragmentSource string) (*Translated, error) {
	t := GetTranslator()
	if t == nil {
		return nil, fmt.Errorf("shader translator is not available")
	}

	vsShader, err := t.TranslateShader(vertexSource, "vertex", gst.ShaderSpecWebGL2, gst.OutputFormatGLSL410)
	if err != nil {
		return nil, fmt.Errorf("vertex shader translation failed: %w", err)
	}
	fsShader, err := t.TranslateShader(fragmentSource, "fragment", gst.ShaderSpecWebGL2, gst.OutputFormatGLSL410)
	if err != nil {
		return nil, fmt.Errorf("fragment shader translation failed: %w", err)
	}

	aliases := aliasesFrom(vsShader.Variables)
	for name, mapped := range aliasesFrom(fsShader.Variables) {
		aliases[name] = mapped
	}

	return &Translated{
		Vertex:   vsShader.Code,
		Fragment: fsShader.Code,
		Aliases:  aliases,
	}, nil
}

// aliasesFrom keeps only the variables whose name changed.
func aliasesFrom(variables map[string]gst.ShaderVariable) map[string]string {
	aliases := make(map[string]string, len(variables))
	for name, v := range variables {
		if v.MappedName != "" && v.MappedName != name {
			aliases[name] = v.MappedName
		}
	}
	return aliases
}
