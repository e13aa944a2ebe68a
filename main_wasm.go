//go:build js && wasm

package main

import (
	"bytes"
	"fmt"
	"syscall/js"

	"github.com/fatih/color"

	"kotlinlex/internal/frontend/lexer"
	"kotlinlex/internal/option"
	"kotlinlex/internal/report"
)

// lexCode analyses Kotlin code and returns the rendered report
func lexCode(code string, format string) (out string, success bool, err error) {
	jsConsole := js.Global().Get("console")

	defer func() {
		if r := recover(); r != nil {
			jsConsole.Call("error", "PANIC in lexCode:", fmt.Sprint(r))
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	// No file system in the browser: the code is analysed as one virtual file
	virtualFilePath := "main.kt"
	result := lexer.New(lexer.WithFilePath(virtualFilePath)).Analyze(code)

	var buf bytes.Buffer
	err = report.Write(&buf, []report.File{{
		Path:   virtualFilePath,
		Result: result,
		Source: code,
	}}, report.Options{
		Format:     format,
		ShowTokens: true,
	})
	return buf.String(), result.Success, err
}

// kotlinLexJS is the JavaScript-callable function
func kotlinLexJS(this js.Value, args []js.Value) interface{} {
	defer func() {
		if r := recover(); r != nil {
			jsConsole := js.Global().Get("console")
			jsConsole.Call("error", "PANIC in lexer:", fmt.Sprint(r))
		}
	}()

	if len(args) < 1 {
		return map[string]interface{}{
			"success": false,
			"error":   "Expected at least 1 argument (code string)",
		}
	}

	code := args[0].String()
	format := option.OutputJSON
	if len(args) > 1 && args[1].Type() == js.TypeString {
		format = args[1].String()
	}

	output, success, err := lexCode(code, format)
	if err != nil {
		return map[string]interface{}{
			"success": false,
			"error":   err.Error(),
		}
	}

	return map[string]interface{}{
		"success": success,
		"output":  output,
	}
}

func main() {
	// Browser consoles do not render ANSI escapes
	color.NoColor = true

	// Prevent the program from exiting
	c := make(chan struct{})

	js.Global().Set("kotlinLex", js.FuncOf(kotlinLexJS))

	// Set version info that JavaScript can check
	js.Global().Set("kotlinLexWasmVersion", "v0.1.0")

	fmt.Println("kotlinlex WASM ready")

	<-c
}
