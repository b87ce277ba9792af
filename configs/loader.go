package configs

import (
	"iter"
	"os"
	"sync"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

// Loader reads layered CUE files. Earlier files take precedence.
type Loader struct {
	paths  []string
	layers func() ([]layer, error)
}

type layer struct {
	path  string
	value cue.Value
}

func NewLoader(paths []string, schemaSrc string) Loader {
	return Loader{
		paths: paths,
		layers: sync.OnceValues(func() ([]layer, error) {
			ctx := cuecontext.New()

			var schema cue.Value
			if schemaSrc != "" {
				schema = ctx.CompileString("close({" + schemaSrc + "})")
				if err := schema.Err(); err != nil {
					return nil, &LoadError{
						Path: "<schema>",
						Err:  err,
					}
				}
			}

			var layers []layer
			for _, path := range paths {
				content, err := os.ReadFile(path)
				if err != nil {
					return nil, &LoadError{
						Path: path,
						Err:  err,
					}
				}
				value := ctx.CompileBytes(content, cue.Filename(path))
				if err := value.Err(); err != nil {
					return nil, &LoadError{
						Path: path,
						Err:  err,
					}
				}
				if schema.Exists() {
					if err := schema.Unify(value).Validate(); err != nil {
						return nil, &LoadError{
							Path: path,
							Err:  err,
						}
					}
				}
				layers = append(layers, layer{
					path:  path,
					value: value,
				})
			}
			return layers, nil
		}),
	}
}

// Paths returns the files the loader reads, in precedence order.
func (l Loader) Paths() []string {
	return l.paths
}

// Err reports the first load or validation failure, if any.
func (l Loader) Err() error {
	_, err := l.layers()
	return err
}

// Values yields the value at path from every layer that defines it.
func (l Loader) Values(path string) iter.Seq2[cue.Value, error] {
	return func(yield func(cue.Value, error) bool) {
		layers, err := l.layers()
		if err != nil {
			yield(cue.Value{}, err)
			return
		}
		cuePath := cue.ParsePath(path)
		for _, layer := range layers {
			value := layer.value.LookupPath(cuePath)
			if !value.Exists() || value.Err() != nil {
				continue
			}
			if !yield(value, nil) {
				return
			}
		}
	}
}

// AssignFirst decodes the highest precedence value at path into target.
func (l Loader) AssignFirst(path string, target any) error {
	for value, err := range l.Values(path) {
		if err != nil {
			return err
		}
		return value.Decode(target)
	}
	return ErrValueNotFound
}
