package schema

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/santhosh-tekuri/jsonschema/v6/kind"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const resourceURL = "mem:///schema.json"

// Validator compiles definitions on first use and checks inputs against them.
// It is safe for concurrent use.
type Validator struct {
	cache    sync.Map // *Definition -> *jsonschema.Schema
	compiled atomic.Uint64
	printer  *message.Printer
}

// New returns a Validator with an empty cache.
func New() *Validator {
	return &Validator{printer: message.NewPrinter(language.English)}
}

var defaultValidator = sync.OnceValue(New)

// Default returns the process-wide Validator.
func Default() *Validator {
	return defaultValidator()
}

// Compiled reports how many definitions have been compiled.
func (v *Validator) Compiled() uint64 {
	return v.compiled.Load()
}

// Validate checks every slot of s that has a definition.
// Failures accumulate across slots. A nil s always succeeds.
func (v *Validator) Validate(in Input, s *Schema) (res Result) {
	if s == nil {
		return success()
	}

	defer func() {
		if r := recover(); r != nil {
			res = unknown(r)
		}
	}()

	slots := []struct {
		name  string
		def   *Definition
		value any
	}{
		{SlotBody, s.Body, in.Body},
		{SlotParams, s.Params, in.Params},
		{SlotQuery, s.Query, in.Query},
		{SlotHeaders, s.Headers, in.Headers},
	}

	var issues []Issue
	for _, slot := range slots {
		if slot.def == nil {
			continue
		}
		found, err := v.check(slot.name, slot.def, slot.value)
		if err != nil {
			return unknown(err)
		}
		issues = append(issues, found...)
	}

	if len(issues) == 0 {
		return success()
	}
	return Result{Failed: true, Desc: DescInvalidRequest, Errors: issues}
}

func (v *Validator) check(slot string, def *Definition, value any) ([]Issue, error) {
	sch, err := v.compile(def)
	if err != nil {
		return nil, err
	}

	inst, err := instance(value)
	if err != nil {
		return nil, err
	}

	err = sch.Validate(inst)
	if err == nil {
		return nil, nil
	}

	var verr *jsonschema.ValidationError
	if !errors.As(err, &verr) {
		return nil, err
	}

	var issues []Issue
	v.collect(slot, verr, &issues)
	sort.SliceStable(issues, func(i, j int) bool {
		return issues[i].Path < issues[j].Path
	})
	return issues, nil
}

func (v *Validator) compile(def *Definition) (*jsonschema.Schema, error) {
	if cached, ok := v.cache.Load(def); ok {
		return cached.(*jsonschema.Schema), nil
	}

	doc, err := instance(def.doc)
	if err != nil {
		return nil, errors.Join(ErrCompile, err)
	}

	c := jsonschema.NewCompiler()
	c.DefaultDraft(jsonschema.Draft2020)
	c.AssertFormat()
	if err := c.AddResource(resourceURL, doc); err != nil {
		return nil, errors.Join(ErrCompile, err)
	}
	sch, err := c.Compile(resourceURL)
	if err != nil {
		return nil, errors.Join(ErrCompile, err)
	}
	v.compiled.Add(1)

	actual, _ := v.cache.LoadOrStore(def, sch)
	return actual.(*jsonschema.Schema), nil
}

// collect appends one issue per leaf of the error tree.
func (v *Validator) collect(slot string, verr *jsonschema.ValidationError, out *[]Issue) {
	if len(verr.Causes) > 0 {
		for _, cause := range verr.Causes {
			v.collect(slot, cause, out)
		}
		return
	}

	if req, ok := verr.ErrorKind.(*kind.Required); ok {
		for _, name := range req.Missing {
			missing := &kind.Required{Missing: []string{name}}
			*out = append(*out, Issue{
				Type:    slot,
				Path:    pointer(append(cloneTokens(verr.InstanceLocation), name)),
				Message: missing.LocalizedString(v.printer),
			})
		}
		return
	}

	*out = append(*out, Issue{
		Type:    slot,
		Path:    pointer(verr.InstanceLocation),
		Message: verr.ErrorKind.LocalizedString(v.printer),
	})
}

// instance round-trips value through JSON so the validator only sees
// JSON-shaped data with numbers as json.Number.
func instance(value any) (any, error) {
	raw, err := json.Marshal(value)
	if err != nil {
		return nil, errors.Join(ErrInstance, err)
	}
	out, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return nil, errors.Join(ErrInstance, err)
	}
	return out, nil
}

// pointer renders a JSON pointer (RFC 6901).
func pointer(tokens []string) string {
	if len(tokens) == 0 {
		return ""
	}
	var b strings.Builder
	r := strings.NewReplacer("~", "~0", "/", "~1")
	for _, t := range tokens {
		b.WriteByte('/')
		b.WriteString(r.Replace(t))
	}
	return b.String()
}

func cloneTokens(s []string) []string {
	return append([]string(nil), s...)
}

func messageOf(v any) string {
	switch e := v.(type) {
	case error:
		return e.Error()
	case string:
		return e
	default:
		return fmt.Sprint(e)
	}
}
