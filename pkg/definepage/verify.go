package definepage

import (
	"fmt"

	"github.com/evanw/esbuild/pkg/api"
)

// VerifyModule parses code as an ES module written in the given script
// language and reports every syntax error as a *VerifyError.
func VerifyModule(code, lang, file string) error {
	result := api.Transform(code, api.TransformOptions{
		Loader:     loaderFor(lang),
		Format:     api.FormatESModule,
		Sourcefile: file,
		LogLevel:   api.LogLevelSilent,
	})
	if len(result.Errors) == 0 {
		return nil
	}

	verr := &VerifyError{File: file}
	for _, msg := range result.Errors {
		if loc := msg.Location; loc != nil {
			verr.Messages = append(verr.Messages, fmt.Sprintf("%d:%d: %s", loc.Line, loc.Column, msg.Text))
			continue
		}
		verr.Messages = append(verr.Messages, msg.Text)
	}
	return verr
}

func loaderFor(lang string) api.Loader {
	switch lang {
	case "ts", "typescript", "mts":
		return api.LoaderTS
	case "tsx":
		return api.LoaderTSX
	default:
		return api.LoaderJSX
	}
}
