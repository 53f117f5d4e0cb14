//go:build js && wasm

package main

import (
	"encoding/json"
	"syscall/js"

	"github.com/structboard/structboard/internal/document"
	"github.com/structboard/structboard/internal/session"
)

var sess *session.Session

func main() {
	var err error
	sess, err = session.New("", session.DefaultSettings())
	if err != nil {
		js.Global().Get("console").Call("error", err.Error())
		return
	}

	// Create the engine API object
	structboard := js.Global().Get("Object").New()

	// --- Commands (frontend → engine) ---
	structboard.Set("send", js.FuncOf(send))
	structboard.Set("loadElements", js.FuncOf(loadElements))

	// --- Queries (frontend ← engine) ---
	structboard.Set("render", js.FuncOf(render))
	structboard.Set("hitTest", js.FuncOf(hitTest))
	structboard.Set("getSelectionBounds", js.FuncOf(getSelectionBounds))
	structboard.Set("getElements", js.FuncOf(getElements))

	// Register on global scope
	js.Global().Set("structboard", structboard)

	// Signal that WASM is ready
	js.Global().Set("structboardWasmReady", js.ValueOf(true))

	// Keep Go runtime alive
	select {}
}

func errorValue(err error) js.Value {
	return js.ValueOf(map[string]interface{}{"error": err.Error()})
}

func marshal(v any) interface{} {
	data, err := json.Marshal(v)
	if err != nil {
		return errorValue(err)
	}
	return js.ValueOf(string(data))
}

// --- Command Handlers ---

// send takes one protocol message as JSON and returns the resulting frame
// message as JSON, the same exchange the websocket transport carries.
func send(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return js.ValueOf(map[string]interface{}{"error": "missing message JSON"})
	}

	var msg session.Message
	if err := json.Unmarshal([]byte(args[0].String()), &msg); err != nil {
		return errorValue(err)
	}
	frame, err := sess.Handle(&msg)
	if err != nil {
		return errorValue(err)
	}
	return marshal(frame)
}

func loadElements(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return js.ValueOf(map[string]interface{}{"error": "missing elements JSON"})
	}

	var els []document.Element
	if err := json.Unmarshal([]byte(args[0].String()), &els); err != nil {
		return errorValue(err)
	}
	sess.Load(els)
	return js.ValueOf(map[string]interface{}{"ok": true})
}

// --- Query Handlers ---

func render(this js.Value, args []js.Value) interface{} {
	frame, err := sess.Frame()
	if err != nil {
		return errorValue(err)
	}
	return marshal(frame)
}

func hitTest(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return js.ValueOf("")
	}
	return js.ValueOf(sess.HitTest(document.Point{X: args[0].Float(), Y: args[1].Float()}))
}

func getSelectionBounds(this js.Value, args []js.Value) interface{} {
	b, ok := sess.SelectionBounds()
	if !ok {
		return js.Null()
	}
	return marshal(b)
}

func getElements(this js.Value, args []js.Value) interface{} {
	return marshal(sess.Elements())
}
