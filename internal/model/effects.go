package model

// EffectKind identifies an action the host must carry out
type EffectKind string

const (
	EffectMessage       EffectKind = "message"         // send Message to Target
	EffectBroadcast     EffectKind = "broadcast"       // send Message to everyone
	EffectTeleport      EffectKind = "teleport"        // move Target to Location
	EffectKick          EffectKind = "kick"            // disconnect Target with Message
	EffectSetWorldSpawn EffectKind = "set_world_spawn" // set the host world spawn to Location
)

// Effect is a single host-side action produced by an event or command.
// An empty Target on a message means the command sender.
type Effect struct {
	Kind     EffectKind
	Target   PlayerID
	Message  string
	Location *Location
}

// Message builds a message effect
func Message(target PlayerID, text string) Effect {
	return Effect{Kind: EffectMessage, Target: target, Message: text}
}

// Broadcast builds a broadcast effect
func Broadcast(text string) Effect {
	return Effect{Kind: EffectBroadcast, Message: text}
}

// Teleport builds a teleport effect
func Teleport(target PlayerID, loc Location) Effect {
	return Effect{Kind: EffectTeleport, Target: target, Location: &loc}
}

// Kick builds a kick effect
func Kick(target PlayerID, text string) Effect {
	return Effect{Kind: EffectKick, Target: target, Message: text}
}

// SetWorldSpawn builds a world spawn update effect
func SetWorldSpawn(loc Location) Effect {
	return Effect{Kind: EffectSetWorldSpawn, Location: &loc}
}
