// Copyright © 2025 Phuong Dang phuongdvk47ds@gmail.com
// SPDX-License-Identifier: MIT

package output

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/apex/log"
)

// Tag represents a discovered struct field tag used when emitting schema
// information (--schema flag).
type Tag struct {
	Name string
	Type string
}

// NewTag constructs a Tag from a raw json struct tag value and the field
// type. Tags marked with "-" produce an empty Tag.
func NewTag(s string, typ string) Tag {
	tag := Tag{}

	parts := strings.Split(s, ",")
	if len(parts) == 0 || parts[0] == "" || parts[0] == "-" {
		return tag
	}

	tag.Name = parts[0]
	tag.Type = typ

	return tag
}

// Print renders the tag into its display form.
func (t Tag) Print() (out string) {
	if t.Name == "" {
		return ""
	}
	return fmt.Sprintf("%s (%s)", t.Name, t.Type)
}

// DumpSchema prints a sorted list of row attributes for the provided type.
// These are the keys available to the --attrs, --filter and --sort flags.
func DumpSchema(typ reflect.Type) {
	tags := DumpSchemaWalker(typ)
	if len(tags) == 0 {
		log.Debugf("No tags found for type: %s", typ.Name())
		return
	}

	sort.Slice(tags, func(i, j int) bool {
		return tags[i].Name < tags[j].Name
	})

	fmt.Println("Schema for", typ.Name(), "--")

	for _, tag := range tags {
		fmt.Println(tag.Print())
	}

	fmt.Println("")
	fmt.Println(
		`Row attributes that are directly available to the --attrs, --filter and
--sort flags.`)
}

// DumpSchemaWalker walks a struct type discovering json tags.
func DumpSchemaWalker(typ reflect.Type) []Tag {
	tags := make([]Tag, 0)

	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)

		log.Debugf("field: %s, type: %s", field.Name, field.Type)

		tagValue, ok := field.Tag.Lookup("json")
		if !ok {
			continue
		}

		tag := NewTag(tagValue, field.Type.String())
		if tag.Name == "" {
			continue
		}

		tags = append(tags, tag)
	}

	return tags
}
