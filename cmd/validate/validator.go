package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/jwebster45206/sultan-admin/pkg/actor"
	"github.com/jwebster45206/sultan-admin/pkg/game"
)

const (
	kindNPC   = "npc"
	kindCard  = "card"
	kindScene = "scene"
)

var snakeCase = regexp.MustCompile(`^[a-z0-9]+(_[a-z0-9]+)*$`)

// Validator collects the findings of one file.
type Validator struct {
	errors   []string
	warnings []string
}

func (v *Validator) ValidateFile(kind, filename string) error {
	baseName := filepath.Base(filename)
	if !strings.HasSuffix(baseName, ".json") {
		return fmt.Errorf("%s file must have .json extension: %s", kind, baseName)
	}
	if !snakeCase.MatchString(strings.TrimSuffix(baseName, ".json")) {
		v.warnings = append(v.warnings, fmt.Sprintf("filename '%s' should be lowercase snake_case", baseName))
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	if err := v.Validate(kind, data); err != nil {
		return fmt.Errorf("%s: %w", filename, err)
	}
	return nil
}

// Validate decodes data strictly as kind and applies the create rules.
func (v *Validator) Validate(kind string, data []byte) error {
	v.errors = nil
	if !json.Valid(data) {
		return errors.New("invalid JSON")
	}

	switch kind {
	case kindNPC:
		var c game.NPCCreate
		if err := strictDecode(data, &c); err != nil {
			return err
		}
		v.check(c.Validate())
		report := actor.Validate(c.NPC())
		v.errors = append(v.errors, report.Errors...)
		v.warnings = append(v.warnings, report.Warnings...)
	case kindCard:
		var c game.CardCreate
		if err := strictDecode(data, &c); err != nil {
			return err
		}
		v.check(c.Validate())
	case kindScene:
		var c game.SceneCreate
		if err := strictDecode(data, &c); err != nil {
			return err
		}
		v.check(c.Validate())
		for _, id := range c.PrerequisiteScenes {
			if !game.ValidSceneID(id) {
				v.errors = append(v.errors, fmt.Sprintf("prerequisite scene %q is not a valid scene_id", id))
			}
		}
	default:
		return fmt.Errorf("unknown kind %q", kind)
	}

	if len(v.errors) > 0 {
		return fmt.Errorf("validation errors:\n%s", strings.Join(v.errors, "\n"))
	}
	return nil
}

func (v *Validator) check(err error) {
	if err == nil {
		return
	}
	var vErr *game.ValidationError
	if errors.As(err, &vErr) {
		v.errors = append(v.errors, vErr.Message)
		return
	}
	v.errors = append(v.errors, err.Error())
}

func strictDecode(data []byte, dst any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("failed strict JSON unmarshaling: %w", err)
	}
	return nil
}
