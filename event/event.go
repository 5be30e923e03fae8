// Package event defines the outcome payloads a digital house reports to its
// host page and the saved-state blobs it restores from.
//
// The payload shapes are a contract with the host:
//
//	{"event":"SUCCESS","message":"…","reasons":[],"state":"{\"lights\":[0,1,0,1,0]}"}
//
// and, for older hosts,
//
//	{"type":"house-type","event":"FAILURE","message":"…","id":"42","state":"…"}
//
// How a payload reaches the host is up to the Sink.
package event

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/casitadigital/casita/errors"
)

// Kind is the outcome reported to the host.
type Kind string

const (
	KindSuccess Kind = "SUCCESS"
	KindFailure Kind = "FAILURE"
	KindState   Kind = "STATE"
)

// LegacyType is the fixed "type" field of legacy payloads.
const LegacyType = "house-type"

// Outcome is the payload posted after an evaluation.
type Outcome struct {
	Event   Kind     `json:"event"`
	Message string   `json:"message"`
	Reasons []string `json:"reasons"`
	State   string   `json:"state"`
}

// MarshalJSON always emits reasons as an array.
func (o Outcome) MarshalJSON() ([]byte, error) {
	type plain Outcome
	p := plain(o)
	if p.Reasons == nil {
		p.Reasons = []string{}
	}
	return json.Marshal(p)
}

// Succeeded reports whether the outcome is a success.
func (o Outcome) Succeeded() bool {
	return o.Event == KindSuccess
}

// Legacy is the payload shape of hosts that identify houses by id.
type Legacy struct {
	Type    string `json:"type"`
	Event   Kind   `json:"event"`
	Message string `json:"message"`
	ID      string `json:"id"`
	State   string `json:"state"`
}

// Legacy converts o to the legacy shape for the house identified by id.
func (o Outcome) Legacy(id string) Legacy {
	return Legacy{
		Type:    LegacyType,
		Event:   o.Event,
		Message: o.Message,
		ID:      id,
		State:   o.State,
	}
}

// LightsState is the saved state of a single-letter house.
type LightsState struct {
	Lights []int `json:"lights"`
}

// Encode returns the JSON blob carried in Outcome.State.
func (s LightsState) Encode() string {
	lights := s.Lights
	if lights == nil {
		lights = []int{}
	}
	b, _ := json.Marshal(LightsState{Lights: lights})
	return string(b)
}

// SelectorsState is the saved state of a word house: every switch of every
// bank, concatenated.
type SelectorsState struct {
	Selectors string `json:"selectors"`
}

// Encode returns the JSON blob carried in Outcome.State.
func (s SelectorsState) Encode() string {
	b, _ := json.Marshal(s)
	return string(b)
}

// ParseLights decodes a LightsState blob. Every light must be 0 or 1.
func ParseLights(state string) ([]int, error) {
	var s LightsState
	if err := json.Unmarshal([]byte(state), &s); err != nil {
		return nil, errors.New(errors.PhaseDecode, errors.KindInvalidData).
			Path("state").
			Cause(err).
			Detail("lights state").
			Build()
	}
	for i, v := range s.Lights {
		if v != 0 && v != 1 {
			return nil, errors.InvalidData(errors.PhaseDecode, []string{"lights", strconv.Itoa(i)},
				"light value "+strconv.Itoa(v)+" is not 0 or 1")
		}
	}
	return s.Lights, nil
}

// ParseLegacyLights decodes the comma separated lights of legacy hosts,
// e.g. "0,1,0,1,0".
func ParseLegacyLights(state string) ([]int, error) {
	if state == "" {
		return nil, nil
	}
	parts := strings.Split(state, ",")
	lights := make([]int, len(parts))
	for i, p := range parts {
		switch strings.TrimSpace(p) {
		case "0":
			lights[i] = 0
		case "1":
			lights[i] = 1
		default:
			return nil, errors.InvalidData(errors.PhaseDecode, []string{"lights", strconv.Itoa(i)},
				"light value "+strconv.Quote(p)+" is not 0 or 1")
		}
	}
	return lights, nil
}

// ParseSelectors decodes a SelectorsState blob. The selectors must be
// binary digits.
func ParseSelectors(state string) (string, error) {
	var s SelectorsState
	if err := json.Unmarshal([]byte(state), &s); err != nil {
		return "", errors.New(errors.PhaseDecode, errors.KindInvalidData).
			Path("state").
			Cause(err).
			Detail("selectors state").
			Build()
	}
	if i := strings.IndexFunc(s.Selectors, func(r rune) bool { return r != '0' && r != '1' }); i >= 0 {
		return "", errors.InvalidBitVector(errors.PhaseDecode, []string{"selectors", strconv.Itoa(i)}, s.Selectors, "non-binary digit")
	}
	return s.Selectors, nil
}
