package builtin

import (
	"fmt"

	"choco.dev/choco/internal/chocoerr"
	"choco.dev/choco/pkg/value"
)

// registerIO wires the file-I/O built-ins through the injected FileSystem
// collaborator (never os.* directly — the teacher's FSSandbox pattern)
// plus the terminal `input` built-in (spec.md §1, §4.7).
func registerIO(r Registry) {
	r["read_file"] = &Func{Name: "read_file", Arity: arityExactly(1), Run: func(ctx *Context, args []value.Value, line int) (value.Value, error) {
		if ctx.FS == nil {
			return value.Value{}, chocoerr.NewRuntime(line, "read_file: no filesystem available")
		}
		path, err := requireString("read_file", args[0], line)
		if err != nil {
			return value.Value{}, err
		}
		content, err := ctx.FS.ReadFile(path)
		if err != nil {
			return value.Value{}, chocoerr.NewRuntime(line, "read_file: %s", err.Error())
		}
		return value.Str(content), nil
	}}
	r["write_file"] = &Func{Name: "write_file", Arity: arityExactly(2), Run: func(ctx *Context, args []value.Value, line int) (value.Value, error) {
		if ctx.FS == nil {
			return value.Value{}, chocoerr.NewRuntime(line, "write_file: no filesystem available")
		}
		path, err := requireString("write_file", args[0], line)
		if err != nil {
			return value.Value{}, err
		}
		content, err := requireString("write_file", args[1], line)
		if err != nil {
			return value.Value{}, err
		}
		if err := ctx.FS.WriteFile(path, content); err != nil {
			return value.Value{}, chocoerr.NewRuntime(line, "write_file: %s", err.Error())
		}
		return value.NilValue(), nil
	}}
	r["append_file"] = &Func{Name: "append_file", Arity: arityExactly(2), Run: func(ctx *Context, args []value.Value, line int) (value.Value, error) {
		if ctx.FS == nil {
			return value.Value{}, chocoerr.NewRuntime(line, "append_file: no filesystem available")
		}
		path, err := requireString("append_file", args[0], line)
		if err != nil {
			return value.Value{}, err
		}
		content, err := requireString("append_file", args[1], line)
		if err != nil {
			return value.Value{}, err
		}
		if err := ctx.FS.AppendFile(path, content); err != nil {
			return value.Value{}, chocoerr.NewRuntime(line, "append_file: %s", err.Error())
		}
		return value.NilValue(), nil
	}}
	r["file_exists"] = &Func{Name: "file_exists", Arity: arityExactly(1), Run: func(ctx *Context, args []value.Value, line int) (value.Value, error) {
		if ctx.FS == nil {
			return value.Value{}, chocoerr.NewRuntime(line, "file_exists: no filesystem available")
		}
		path, err := requireString("file_exists", args[0], line)
		if err != nil {
			return value.Value{}, err
		}
		return value.Bln(ctx.FS.FileExists(path)), nil
	}}
	r["input"] = &Func{Name: "input", Arity: arityRange(0, 1), Run: builtinInput}
}

func builtinInput(ctx *Context, args []value.Value, line int) (value.Value, error) {
	if len(args) == 1 {
		prompt, err := requireString("input", args[0], line)
		if err != nil {
			return value.Value{}, err
		}
		fmt.Fprint(ctx.Stdout, prompt)
	}
	line2, err := ctx.Stdin.ReadString('\n')
	if err != nil && len(line2) == 0 {
		return value.Str(""), nil // EOF returns empty string (spec.md §4.7)
	}
	for len(line2) > 0 && (line2[len(line2)-1] == '\n' || line2[len(line2)-1] == '\r') {
		line2 = line2[:len(line2)-1]
	}
	return value.Str(line2), nil
}
