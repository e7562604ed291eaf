/*
Copyright 2026 Nscale.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package api

import (
	"fmt"

	"github.com/tidwall/gjson"
)

// ShapeKind is the top level JSON type of a response body.
type ShapeKind int

const (
	ShapeInvalid ShapeKind = iota
	ShapeArray
	ShapeObject
	ShapeScalar
)

func (k ShapeKind) String() string {
	switch k {
	case ShapeArray:
		return "array"
	case ShapeObject:
		return "object"
	case ShapeScalar:
		return "scalar"
	case ShapeInvalid:
		return "invalid"
	}

	return fmt.Sprintf("ShapeKind(%d)", int(k))
}

// Shape is the result of classifying a JSON document. Len is the number
// of elements for an array and the number of members for an object.
type Shape struct {
	Kind ShapeKind
	Len  int
}

// ClassifyJSON reports the top level shape of data. Empty or malformed
// input is ShapeInvalid.
func ClassifyJSON(data []byte) Shape {
	if !gjson.ValidBytes(data) {
		return Shape{Kind: ShapeInvalid}
	}

	value := gjson.ParseBytes(data)

	switch {
	case value.IsArray():
		return Shape{Kind: ShapeArray, Len: len(value.Array())}
	case value.IsObject():
		return Shape{Kind: ShapeObject, Len: len(value.Map())}
	default:
		return Shape{Kind: ShapeScalar}
	}
}
