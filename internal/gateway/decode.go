package gateway

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/bryan-cox/taskboard/internal/errors"
	"github.com/bryan-cox/taskboard/internal/model"
)

// Skipped describes a part of the payload that was not a valid record or
// container and was left out of the dataset.
type Skipped struct {
	Path   string
	Reason string
}

// DecodeJSON decodes a workspace -> date -> task object tree as served by the
// Firebase REST API. Firebase returns objects with dense integer keys as
// arrays; those are accepted at every level, keyed by index.
func DecodeJSON(r io.Reader) (model.Dataset, []Skipped, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var tree any
	if err := dec.Decode(&tree); err != nil {
		if err == io.EOF {
			return model.Dataset{}, nil, nil
		}
		return nil, nil, errors.Wrapf(errors.ErrDecodeFailed, "invalid JSON: %v", err)
	}
	return fromTree(tree)
}

// DecodeYAML decodes the same tree from YAML. Keys are taken verbatim, so
// unquoted dates stay strings.
func DecodeYAML(data []byte) (model.Dataset, []Skipped, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, nil, errors.Wrapf(errors.ErrDecodeFailed, "invalid YAML: %v", err)
	}
	return fromTree(nodeToTree(&root))
}

func nodeToTree(n *yaml.Node) any {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil
		}
		return nodeToTree(n.Content[0])
	case yaml.MappingNode:
		m := make(map[string]any, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			m[n.Content[i].Value] = nodeToTree(n.Content[i+1])
		}
		return m
	case yaml.SequenceNode:
		list := make([]any, 0, len(n.Content))
		for _, child := range n.Content {
			list = append(list, nodeToTree(child))
		}
		return list
	case yaml.AliasNode:
		return nodeToTree(n.Alias)
	case yaml.ScalarNode:
		switch n.ShortTag() {
		case "!!null":
			return nil
		case "!!int", "!!float":
			return json.Number(n.Value)
		}
		return n.Value
	}
	return nil
}

func fromTree(tree any) (model.Dataset, []Skipped, error) {
	dataset := make(model.Dataset)
	if tree == nil {
		return dataset, nil, nil
	}

	workspaces, ok := children(tree)
	if !ok {
		return nil, nil, errors.Wrapf(errors.ErrDecodeFailed, "top level is %s, not an object", kindOf(tree))
	}

	var skipped []Skipped
	for wsName, wsValue := range workspaces {
		if wsValue == nil {
			continue
		}
		dates, ok := children(wsValue)
		if !ok {
			skipped = append(skipped, Skipped{Path: wsName, Reason: "workspace is " + kindOf(wsValue)})
			continue
		}

		workspace := make(model.Workspace, len(dates))
		for date, dateValue := range dates {
			if dateValue == nil {
				continue
			}
			tasks, ok := children(dateValue)
			if !ok {
				skipped = append(skipped, Skipped{Path: wsName + "/" + date, Reason: "date group is " + kindOf(dateValue)})
				continue
			}

			group := make(model.DateGroup, len(tasks))
			for key, taskValue := range tasks {
				if taskValue == nil {
					continue
				}
				rec, err := decodeRecord(taskValue)
				if err != nil {
					skipped = append(skipped, Skipped{Path: wsName + "/" + date + "/" + key, Reason: err.Error()})
					continue
				}
				group[key] = rec
			}
			workspace[date] = group
		}
		dataset[wsName] = workspace
	}
	return dataset, skipped, nil
}

// children returns the entries of an object, or of an array keyed by index
// with null slots dropped.
func children(v any) (map[string]any, bool) {
	switch t := v.(type) {
	case map[string]any:
		return t, true
	case []any:
		m := make(map[string]any, len(t))
		for i, item := range t {
			if item != nil {
				m[strconv.Itoa(i)] = item
			}
		}
		return m, true
	}
	return nil, false
}

func decodeRecord(v any) (model.TaskRecord, error) {
	fields, ok := v.(map[string]any)
	if !ok {
		return model.TaskRecord{}, fmt.Errorf("record is %s", kindOf(v))
	}
	return model.TaskRecord{
		Task:        stringField(fields["task"]),
		Status:      stringField(fields["status"]),
		Rating:      numberField(fields["rating"]),
		ImageURL:    stringField(fields["imageUrl"]),
		CompletedBy: stringField(fields["completedBy"]),
	}, nil
}

func stringField(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case json.Number:
		return t.String()
	case bool:
		return strconv.FormatBool(t)
	}
	return ""
}

// numberField returns nil for anything that is not a number or a numeric
// string, which the aggregations treat as "no rating".
func numberField(v any) *float64 {
	var s string
	switch t := v.(type) {
	case json.Number:
		s = t.String()
	case string:
		s = t
	default:
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return nil
	}
	return &f
}

func kindOf(v any) string {
	switch v.(type) {
	case map[string]any:
		return "an object"
	case []any:
		return "an array"
	case string:
		return "a string"
	case json.Number:
		return "a number"
	case bool:
		return "a boolean"
	case nil:
		return "null"
	}
	return fmt.Sprintf("%T", v)
}
