package storage

import (
	"time"

	"github.com/mcoot/mixplugin-go/internal/model"
)

// Field names of persisted records
const (
	fieldWorld = "world"
	fieldX     = "x"
	fieldY     = "y"
	fieldZ     = "z"
	fieldYaw   = "yaw"
	fieldPitch = "pitch"

	fieldReason   = "reason"
	fieldOperator = "operator"
	fieldUntil    = "until"
	fieldDate     = "date"
	fieldIssued   = "issued"
	fieldName     = "name"
)

// Defaults for ban fields missing from hand-edited documents
const (
	DefaultBanReason   = "Breaking server rules"
	DefaultBanOperator = "Console"
)

// EncodeLocation converts a location to its document form
func EncodeLocation(loc model.Location) *Section {
	s := NewSection()
	s.Set(fieldWorld, loc.World)
	s.Set(fieldX, loc.X)
	s.Set(fieldY, loc.Y)
	s.Set(fieldZ, loc.Z)
	s.Set(fieldYaw, loc.Yaw)
	s.Set(fieldPitch, loc.Pitch)
	return s
}

// DecodeLocation reads a location. World and coordinates are required;
// yaw and pitch default to zero. Anything else reads as absent.
func DecodeLocation(s *Section) (model.Location, bool) {
	if s == nil {
		return model.Location{}, false
	}
	world, ok := s.String(fieldWorld)
	if !ok || world == "" {
		return model.Location{}, false
	}
	x, okX := s.Float(fieldX)
	y, okY := s.Float(fieldY)
	z, okZ := s.Float(fieldZ)
	if !okX || !okY || !okZ {
		return model.Location{}, false
	}
	yaw, _ := s.Float(fieldYaw)
	pitch, _ := s.Float(fieldPitch)
	return model.Location{
		World: world,
		X:     x,
		Y:     y,
		Z:     z,
		Yaw:   float32(yaw),
		Pitch: float32(pitch),
	}, true
}

// EncodeBan converts a ban to its document form. Until is written as epoch
// milliseconds with 0 meaning permanent.
func EncodeBan(ban *model.Ban) *Section {
	s := NewSection()
	s.Set(fieldReason, ban.Reason)
	s.Set(fieldOperator, ban.Operator)
	var until int64
	if !ban.IsPermanent() {
		until = ban.Until.UnixMilli()
	}
	s.Set(fieldUntil, until)
	s.Set(fieldDate, ban.IssuedAt.Format(model.BanDateLayout))
	s.Set(fieldIssued, ban.IssuedAt.UnixMilli())
	if ban.Name != "" {
		s.Set(fieldName, ban.Name)
	}
	return s
}

// DecodeBan reads a ban record for id. Missing fields fall back to the
// defaults an operator would expect from a hand-edited file; only a
// non-mapping entry reads as absent.
func DecodeBan(id model.PlayerID, s *Section) (*model.Ban, bool) {
	if s == nil {
		return nil, false
	}
	ban := &model.Ban{
		PlayerID: id,
		Reason:   DefaultBanReason,
		Operator: DefaultBanOperator,
	}
	if reason, ok := s.String(fieldReason); ok {
		ban.Reason = reason
	}
	if operator, ok := s.String(fieldOperator); ok {
		ban.Operator = operator
	}
	if name, ok := s.String(fieldName); ok {
		ban.Name = name
	}
	if until, ok := s.Int(fieldUntil); ok && until > 0 {
		ban.Until = time.UnixMilli(until)
	}
	if issued, ok := s.Int(fieldIssued); ok {
		ban.IssuedAt = time.UnixMilli(issued)
	} else if date, ok := s.String(fieldDate); ok {
		if t, err := time.ParseInLocation(model.BanDateLayout, date, time.Local); err == nil {
			ban.IssuedAt = t
		}
	}
	return ban, true
}
