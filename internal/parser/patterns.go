package parser

import "regexp"

// Compiled regex patterns for event detection.
var (
	// Matches: "[12:34:56] [Server thread/INFO]: message"
	// Captures: (1) time, (2) thread, (3) level, (4) message
	envelopePattern = regexp.MustCompile(
		`^\[(\d{2}:\d{2}:\d{2})\] \[([^/]+)/([^\]]+)\]: (.*)$`,
	)

	// Matches: "Steve joined the game"
	// Captures: (1) player
	loginPattern = regexp.MustCompile(`^(\S+) joined the game$`)

	// Matches: "Steve left the game"
	// Captures: (1) player
	logoutPattern = regexp.MustCompile(`^(\S+) left the game$`)

	// Matches: "<Steve> hello world"
	// Captures: (1) player, (2) text
	chatPattern = regexp.MustCompile(`^<([^>]+)> (.*)$`)
)

// deathTemplates lists vanilla death messages in match order.
// Captures map positionally to player, killer, weapon.
//
// A template that is a prefix of another ("was slain by X" vs
// "was slain by X using Y") must come after it, otherwise the longer form
// is swallowed with the weapon folded into the killer.
var deathTemplates = []string{
	`^(.*) was shot by arrow$`,
	`^(.*) was shot by (.*) using (.*)$`,
	`^(.*) was shot by (.*)$`,
	`^(.*) was pricked to death$`,
	`^(.*) walked into a cactus while trying to escape (.*)$`,
	`^(.*) drowned whilst trying to escape (.*)$`,
	`^(.*) drowned$`,
	`^(.*) experienced kinetic energy$`,
	`^(.*) blew up$`,
	`^(.*) was blown up by (.*)$`,
	`^(.*) hit the ground too hard$`,
	`^(.*) fell from a high place and fell out of the world$`,
	`^(.*) fell from a high place$`,
	`^(.*) fell off a ladder$`,
	`^(.*) fell off some vines$`,
	`^(.*) fell out of the water$`,
	`^(.*) fell into a patch of fire$`,
	`^(.*) fell into a patch of cacti$`,
	`^(.*) was doomed to fall by (.*)$`,
	`^(.*) was shot off some vines by (.*)$`,
	`^(.*) was shot off a ladder by (.*)$`,
	`^(.*) was blown from a high place by (.*)$`,
	`^(.*) was squashed by a falling anvil$`,
	`^(.*) was squashed by a falling block$`,
	`^(.*) went up in flames$`,
	`^(.*) burned to death$`,
	`^(.*) was burnt to a crisp whilst fighting (.*)$`,
	`^(.*) walked into a fire whilst fighting (.*)$`,
	`^(.*) tried to swim in lava while trying to escape (.*)$`,
	`^(.*) tried to swim in lava$`,
	`^(.*) was struck by lightning$`,
	`^(.*) was slain by (.*) using (.*)$`,
	`^(.*) was slain by (.*)$`,
	`^(.*) got finished off by (.*) using (.*)$`,
	`^(.*) got finished off by (.*)$`,
	`^(.*) was fireballed by (.*)$`,
	`^(.*) was killed by magic$`,
	`^(.*) was killed by (.*) using magic$`,
	`^(.*) starved to death$`,
	`^(.*) fell out of the world$`,
	`^(.*) withered away$`,
	`^(.*) was pummeled by (.*)$`,
}

var deathPatterns = mustCompileAll(deathTemplates)

func mustCompileAll(exprs []string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(exprs))
	for i, expr := range exprs {
		out[i] = regexp.MustCompile(expr)
	}
	return out
}
