package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"
	cueyaml "cuelang.org/go/encoding/yaml"
	"gopkg.in/yaml.v3"
)

//go:embed schema.cue
var schemaCUE string

// Load reads and validates an axes file. Files ending in .cue are read as
// CUE, everything else as YAML.
//
// Validation problems are returned as ValidationErrors; I/O problems as
// plain errors.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read axes file: %w", err)
	}
	if strings.EqualFold(filepath.Ext(path), ".cue") {
		return ParseCUE(path, data)
	}
	return ParseYAML(path, data)
}

// ParseYAML decodes and validates a YAML axes file. filename is used in
// error positions only.
func ParseYAML(filename string, data []byte) (*File, error) {
	ctx := cuecontext.New()

	expr, err := cueyaml.Extract(filename, data)
	if err != nil {
		return nil, ValidationErrors(fromCUEError(err, filename, ErrSyntax))
	}
	if errs := checkSchema(ctx, ctx.BuildFile(expr), filename); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	var f File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, ValidationErrors{{
			Field:   "file",
			Message: err.Error(),
			Code:    ErrSyntax,
		}}
	}

	return finish(&f)
}

// ParseCUE compiles and validates a CUE axes file.
func ParseCUE(filename string, data []byte) (*File, error) {
	ctx := cuecontext.New()

	v := ctx.CompileBytes(data, cue.Filename(filename))
	if err := v.Err(); err != nil {
		return nil, ValidationErrors(fromCUEError(err, filename, ErrSyntax))
	}
	if errs := checkSchema(ctx, v, filename); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	var f File
	if err := v.Decode(&f); err != nil {
		return nil, ValidationErrors(fromCUEError(err, filename, ErrSchema))
	}

	return finish(&f)
}

func finish(f *File) (*File, error) {
	for i := range f.Axes {
		f.Axes[i].Name = NormalizeName(f.Axes[i].Name)
	}
	if errs := Validate(f); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}
	return f, nil
}

// checkSchema unifies v with the embedded #File definition.
func checkSchema(ctx *cue.Context, v cue.Value, filename string) []ValidationError {
	if err := v.Err(); err != nil {
		return fromCUEError(err, filename, ErrSyntax)
	}

	schema := ctx.CompileString(schemaCUE, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		// the schema is embedded; this only fails when it was edited badly
		panic(fmt.Sprintf("config: invalid embedded schema: %v", err))
	}

	unified := schema.LookupPath(cue.ParsePath("#File")).Unify(v)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return fromCUEError(err, filename, ErrSchema)
	}
	return nil
}

// fromCUEError converts CUE errors, keeping the first position inside
// filename.
func fromCUEError(err error, filename, code string) []ValidationError {
	var out []ValidationError
	for _, e := range errors.Errors(err) {
		format, args := e.Msg()
		out = append(out, ValidationError{
			Field:   fieldOf(e.Path()),
			Message: fmt.Sprintf(format, args...),
			Code:    code,
			Line:    lineIn(errors.Positions(e), filename),
		})
	}
	if len(out) == 0 {
		out = append(out, ValidationError{Field: "file", Message: err.Error(), Code: code})
	}
	return out
}

func fieldOf(path []string) string {
	if len(path) == 0 {
		return "file"
	}
	var b strings.Builder
	for i, p := range path {
		if p != "" && p[0] >= '0' && p[0] <= '9' {
			fmt.Fprintf(&b, "[%s]", p)
			continue
		}
		if i > 0 {
			b.WriteByte('.')
		}
		b.WriteString(p)
	}
	return b.String()
}

func lineIn(positions []token.Pos, filename string) int {
	for _, p := range positions {
		if p.IsValid() && p.Filename() == filename {
			return p.Line()
		}
	}
	return 0
}
