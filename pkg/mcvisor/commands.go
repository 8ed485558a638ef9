package mcvisor

import (
	"fmt"
	"strconv"
	"strings"
)

// GameMode is a player game mode.
type GameMode int

// Game modes.
const (
	Survival GameMode = iota
	Creative
	Adventure
	Spectator
)

func (m GameMode) String() string {
	switch m {
	case Survival:
		return "survival"
	case Creative:
		return "creative"
	case Adventure:
		return "adventure"
	case Spectator:
		return "spectator"
	}
	return strconv.Itoa(int(m))
}

// Difficulty is a world difficulty level.
type Difficulty int

// Difficulty levels.
const (
	Peaceful Difficulty = iota
	Easy
	Normal
	Hard
)

func (d Difficulty) String() string {
	switch d {
	case Peaceful:
		return "peaceful"
	case Easy:
		return "easy"
	case Normal:
		return "normal"
	case Hard:
		return "hard"
	}
	return strconv.Itoa(int(d))
}

// AllPlayers is the target selector for every online player.
const AllPlayers = "@a"

// send joins the non-empty parts into one command.
func (c *Console) send(parts ...string) error {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return c.Command("%s", strings.Join(kept, " "))
}

func num(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

// Game mode, difficulty, rules

// SetDifficulty sets the world difficulty.
func (c *Console) SetDifficulty(d Difficulty) error {
	return c.send("/difficulty", d.String())
}

// SetGameMode sets the game mode of player, or of every player when player is empty.
func (c *Console) SetGameMode(mode GameMode, player string) error {
	return c.send("/gamemode", mode.String(), orDefault(player, AllPlayers))
}

// SetDefaultGameMode sets the game mode given to new players.
func (c *Console) SetDefaultGameMode(mode GameMode) error {
	return c.send("/defaultgamemode", mode.String())
}

// SetGameRule updates a game rule. Booleans are sent as "true"/"false".
func (c *Console) SetGameRule(rule string, value any) error {
	return c.send("/gamerule", rule, fmt.Sprint(value))
}

// Time, weather

// SetTime sets the in-game time ("day", "night" or a tick count).
func (c *Console) SetTime(t string) error {
	return c.send("/time", "set", t)
}

// ToggleDownfall toggles rain.
func (c *Console) ToggleDownfall() error {
	return c.send("/toggledownfall")
}

// SetWeather sets the weather ("clear", "rain", "thunder") for seconds,
// or for a random duration when seconds is 0.
func (c *Console) SetWeather(weather string, seconds int) error {
	var d string
	if seconds > 0 {
		d = strconv.Itoa(seconds)
	}
	return c.send("/weather", weather, d)
}

// Effects, killing, XP

// EffectAmplifier converts a 1-based effect level into the amplifier byte
// expected by /effect. Levels are clamped to ±128; negative levels wrap
// (-1 becomes 255) and level 0 is treated as 1.
func EffectAmplifier(level int) int {
	switch {
	case level > 128:
		level = 128
	case level < -128:
		level = -128
	case level == 0:
		level = 1
	}
	if level < 0 {
		return 256 + level
	}
	return level - 1
}

// ApplyEffect gives player an effect for seconds at a 1-based level.
func (c *Console) ApplyEffect(player, effect string, seconds, level int) error {
	return c.send("/effect", player, effect, strconv.Itoa(seconds), strconv.Itoa(EffectAmplifier(level)))
}

// Kill kills the targeted players or entities.
func (c *Console) Kill(target string) error {
	return c.send("/kill", target)
}

// GiveXP gives experience points to player.
func (c *Console) GiveXP(player string, amount int) error {
	return c.send("/xp", strconv.Itoa(amount), player)
}

// Server messages

// Say broadcasts a server message.
func (c *Console) Say(message string) error {
	return c.send("/say", message)
}

// Tell sends a private message.
func (c *Console) Tell(player, message string) error {
	return c.send("/tell", player, message)
}

// TellRaw sends a raw JSON text component.
func (c *Console) TellRaw(player, json string) error {
	return c.send("/tellraw", player, json)
}

// Achievements

// GiveAchievement grants an achievement.
func (c *Console) GiveAchievement(achievement, player string) error {
	return c.send("/achievement", "give", achievement, player)
}

// TakeAchievement revokes an achievement.
func (c *Console) TakeAchievement(achievement, player string) error {
	return c.send("/achievement", "take", achievement, player)
}

// White list, ban list, permissions

// Op promotes player to operator.
func (c *Console) Op(player string) error {
	return c.send("/op", player)
}

// Deop demotes player from operator.
func (c *Console) Deop(player string) error {
	return c.send("/deop", player)
}

// BanPlayer bans player. reason may be empty.
func (c *Console) BanPlayer(player, reason string) error {
	return c.send("/ban", player, reason)
}

// BanIP bans connections from an address. reason may be empty.
func (c *Console) BanIP(ip, reason string) error {
	return c.send("/ban-ip", ip, reason)
}

// PardonPlayer removes player from the ban list.
func (c *Console) PardonPlayer(player string) error {
	return c.send("/pardon", player)
}

// PardonIP removes an address from the ban list.
func (c *Console) PardonIP(ip string) error {
	return c.send("/pardon-ip", ip)
}

// KickPlayer disconnects player. reason may be empty.
func (c *Console) KickPlayer(player, reason string) error {
	return c.send("/kick", player, reason)
}

// SetIdleTimeout sets how many minutes idle players may stay connected.
func (c *Console) SetIdleTimeout(minutes int) error {
	return c.send("/setidletimeout", strconv.Itoa(minutes))
}

// Inventory management

// GiveItem gives amount of item to player. data and dataTag may be empty.
func (c *Console) GiveItem(player, item string, amount int, data, dataTag string) error {
	return c.send("/give", player, item, strconv.Itoa(amount), data, dataTag)
}

// ClearOptions narrows what ClearInventory removes.
type ClearOptions struct {
	Item     string
	Data     string // only used with Item
	MaxCount int    // 0 removes every match
	DataTag  string
}

// ClearInventory removes items from player's inventory.
func (c *Console) ClearInventory(player string, opts ClearOptions) error {
	parts := []string{"/clear", player}
	if opts.Item != "" {
		parts = append(parts, opts.Item, opts.Data)
	}
	if opts.MaxCount > 0 {
		parts = append(parts, strconv.Itoa(opts.MaxCount))
	}
	parts = append(parts, opts.DataTag)
	return c.send(parts...)
}

// Sounds, particles

// Sound describes a /playsound invocation. Empty coordinates default to the
// player's position ("~"); zero Volume and Pitch default to 1.
type Sound struct {
	Name      string
	Source    string
	Player    string
	X, Y, Z   string
	Volume    float64
	Pitch     float64
	MinVolume float64
}

// PlaySound plays a sound to a player.
func (c *Console) PlaySound(s Sound) error {
	volume, pitch := s.Volume, s.Pitch
	if volume == 0 {
		volume = 1
	}
	if pitch == 0 {
		pitch = 1
	}
	return c.send("/playsound", s.Name, s.Source, s.Player,
		orDefault(s.X, "~"), orDefault(s.Y, "~"), orDefault(s.Z, "~"),
		num(volume), num(pitch), num(s.MinVolume))
}

// StopSound stops sounds for player. source defaults to "master"; an empty
// sound stops every sound from source.
func (c *Console) StopSound(player, source, sound string) error {
	return c.send("/stopsound", player, orDefault(source, "master"), sound)
}

// Particle describes a /particle invocation.
type Particle struct {
	Name       string
	X, Y, Z    string
	DX, DY, DZ float64
	Speed      float64
	Count      int
	Mode       string // "normal" or "force"; empty omits it
	Player     string
	Params     string
}

// ParticleEffect displays particles.
func (c *Console) ParticleEffect(p Particle) error {
	parts := []string{"/particle", p.Name, p.X, p.Y, p.Z,
		num(p.DX), num(p.DY), num(p.DZ), num(p.Speed), strconv.Itoa(p.Count)}
	parts = append(parts, p.Mode, p.Player, p.Params)
	return c.send(parts...)
}

// Saving

// SaveAll saves the world, flushing chunks to disk synchronously when flush is set.
func (c *Console) SaveAll(flush bool) error {
	if flush {
		return c.send("/save-all", "flush")
	}
	return c.send("/save-all")
}

// SetAutoSave enables or disables automatic saving.
func (c *Console) SetAutoSave(enabled bool) error {
	if enabled {
		return c.send("/save-on")
	}
	return c.send("/save-off")
}

// Player spawning, teleporting, spreading

// SetWorldSpawn sets the world spawn point.
func (c *Console) SetWorldSpawn(x, y, z string) error {
	return c.send("/setworldspawn", x, y, z)
}

// SetPlayerSpawn sets player's spawn point.
func (c *Console) SetPlayerSpawn(player, x, y, z string) error {
	return c.send("/spawnpoint", player, x, y, z)
}

// SpreadPlayers teleports targets to random positions around (x, z).
func (c *Console) SpreadPlayers(x, z string, spreadDistance, maxRange float64, respectTeams bool, targets string) error {
	return c.send("/spreadplayers", x, z, num(spreadDistance), num(maxRange),
		strconv.FormatBool(respectTeams), targets)
}

// Teleport moves target to a position. Empty rotations keep the current
// facing ("~").
func (c *Console) Teleport(target, x, y, z, yRot, xRot string) error {
	return c.send("/teleport", target, x, y, z, orDefault(yRot, "~"), orDefault(xRot, "~"))
}

// TeleportTo moves target to destination's position.
func (c *Console) TeleportTo(target, destination string) error {
	return c.send("/tp", target, destination)
}

// Summoning

// Summon spawns an entity at a position. dataTag may be empty.
func (c *Console) Summon(entity, x, y, z, dataTag string) error {
	return c.send("/summon", entity, x, y, z, dataTag)
}

// SummonAtPlayer spawns an entity at player's position. dataTag may be empty.
func (c *Console) SummonAtPlayer(player, entity, dataTag string) error {
	return c.send("/execute", player, "~ ~ ~", "summon", entity, "~ ~ ~", dataTag)
}

// World border

// SetWorldBorder sets the border diameter, over seconds when seconds > 0.
func (c *Console) SetWorldBorder(diameter float64, seconds int) error {
	return c.send("/worldborder", "set", num(diameter), optionalInt(seconds))
}

// IncreaseWorldBorder grows (or with a negative distance, shrinks) the border.
func (c *Console) IncreaseWorldBorder(distance float64, seconds int) error {
	return c.send("/worldborder", "add", num(distance), optionalInt(seconds))
}

// CenterWorldBorder recenters the border.
func (c *Console) CenterWorldBorder(x, z float64) error {
	return c.send("/worldborder", "center", num(x), num(z))
}

// SetWorldBorderDamageAmount sets damage per block outside the buffer.
func (c *Console) SetWorldBorderDamageAmount(perBlock float64) error {
	return c.send("/worldborder", "damage", "amount", num(perBlock))
}

// SetWorldBorderDamageBuffer sets the safe distance outside the border.
func (c *Console) SetWorldBorderDamageBuffer(distance float64) error {
	return c.send("/worldborder", "damage", "buffer", num(distance))
}

// SetWorldBorderWarningDistance sets the warning distance in blocks.
func (c *Console) SetWorldBorderWarningDistance(distance int) error {
	return c.send("/worldborder", "warning", "distance", strconv.Itoa(distance))
}

// SetWorldBorderWarningTime sets the warning time in seconds.
func (c *Console) SetWorldBorderWarningTime(seconds int) error {
	return c.send("/worldborder", "warning", "time", strconv.Itoa(seconds))
}

func optionalInt(n int) string {
	if n <= 0 {
		return ""
	}
	return strconv.Itoa(n)
}
