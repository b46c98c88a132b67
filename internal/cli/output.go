package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"time"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
	w      io.Writer
}

// NewOutput creates a new Output formatter writing to w
func NewOutput(format string, w io.Writer) *Output {
	return &Output{format: format, w: w}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Fprintln(o.w, string(data))
	} else {
		fmt.Fprintln(o.w, msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case BanList:
		o.printBanList(v)
	case Ban:
		o.printBan(v)
	case UnbanResult:
		fmt.Fprintf(o.w, "Unbanned %s\n", v.PlayerID)
	case Spawns:
		o.printSpawns(v)
	case Location:
		fmt.Fprintf(o.w, "Spawn set: %s\n", v)
	case HealthResult:
		o.printHealth(v)
	case HashedKey:
		o.printHashedKey(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Ban response type (matches API)
type Ban struct {
	PlayerID  string     `json:"player_id"`
	Name      string     `json:"name,omitempty"`
	Reason    string     `json:"reason"`
	Operator  string     `json:"operator"`
	IssuedAt  time.Time  `json:"issued_at"`
	Until     *time.Time `json:"until"`
	UntilMS   int64      `json:"until_ms,omitempty"`
	Permanent bool       `json:"permanent"`
}

// BanList response type
type BanList struct {
	Bans []Ban `json:"bans"`
}

// UnbanResult response type
type UnbanResult struct {
	PlayerID string `json:"player_id"`
}

// Location response type
type Location struct {
	World string  `json:"world"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Z     float64 `json:"z"`
	Yaw   float32 `json:"yaw"`
	Pitch float32 `json:"pitch"`
}

func (l Location) String() string {
	return fmt.Sprintf("%s (%.1f, %.1f, %.1f) yaw %.1f pitch %.1f", l.World, l.X, l.Y, l.Z, l.Yaw, l.Pitch)
}

// Spawns response type
type Spawns struct {
	FirstJoinSpawn *Location           `json:"first_join_spawn"`
	WorldSpawns    map[string]Location `json:"world_spawns"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`

	// filled in by the CLI
	Server  string `json:"server,omitempty"`
	Latency string `json:"latency,omitempty"`
	Auth    string `json:"auth,omitempty"`
}

// HashedKey is printed by hash-key
type HashedKey struct {
	Key  string `json:"key,omitempty"`
	Hash string `json:"hash"`
}

func (o *Output) printBanList(l BanList) {
	if len(l.Bans) == 0 {
		fmt.Fprintln(o.w, "No bans")
		return
	}
	fmt.Fprintf(o.w, "Bans (%d):\n", len(l.Bans))
	for _, b := range l.Bans {
		name := b.Name
		if name == "" {
			name = b.PlayerID
		}
		fmt.Fprintf(o.w, "  - %s: %s (by %s, %s)\n", name, b.Reason, b.Operator, expiry(b))
	}
}

func (o *Output) printBan(b Ban) {
	name := b.Name
	if name == "" {
		name = "unknown"
	}
	fmt.Fprintf(o.w, "Banned: %s (%s)\n", name, b.PlayerID)
	fmt.Fprintf(o.w, "Reason: %s\n", b.Reason)
	fmt.Fprintf(o.w, "Operator: %s\n", b.Operator)
	fmt.Fprintf(o.w, "Expires: %s\n", expiry(b))
}

func (o *Output) printSpawns(s Spawns) {
	if s.FirstJoinSpawn != nil {
		fmt.Fprintf(o.w, "First join: %s\n", *s.FirstJoinSpawn)
	} else {
		fmt.Fprintln(o.w, "First join: not set")
	}

	worlds := make([]string, 0, len(s.WorldSpawns))
	for world := range s.WorldSpawns {
		worlds = append(worlds, world)
	}
	sort.Strings(worlds)

	fmt.Fprintf(o.w, "World spawns (%d):\n", len(worlds))
	for _, world := range worlds {
		fmt.Fprintf(o.w, "  - %s\n", s.WorldSpawns[world])
	}
}

func (o *Output) printHashedKey(h HashedKey) {
	if h.Key != "" {
		fmt.Fprintf(o.w, "Key:  %s\n", h.Key)
	}
	fmt.Fprintf(o.w, "Hash: %s\n", h.Hash)
	fmt.Fprintln(o.w, "Set MIXPLUGIN_API_KEY_HASH to the hash on the server.")
}

func expiry(b Ban) string {
	switch {
	case b.Permanent:
		return "permanent"
	case b.Until != nil:
		return "until " + b.Until.Local().Format("2006-01-02 15:04")
	case b.UntilMS > 0:
		return "until " + time.UnixMilli(b.UntilMS).UTC().Format("2006-01-02")
	default:
		return "permanent"
	}
}

func (o *Output) printHealth(h HealthResult) {
	fmt.Fprintf(o.w, "Status: %s\n", h.Status)
	if h.Server != "" {
		fmt.Fprintf(o.w, "Server: %s (%s)\n", h.Server, h.Latency)
	}
	if h.Auth != "" {
		fmt.Fprintf(o.w, "API key: %s\n", h.Auth)
	}
}
