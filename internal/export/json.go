package export

import (
	"encoding/json"
	"io"

	"github.com/rotisserie/eris"

	"github.com/sells-group/pool-cli/internal/leaderboard"
	"github.com/sells-group/pool-cli/internal/scoring"
)

// WriteJSON writes the board as indented JSON.
func WriteJSON(out io.Writer, b *leaderboard.Board) error {
	return encode(out, b)
}

// WriteCardJSON writes one participant's breakdown as indented JSON.
func WriteCardJSON(out io.Writer, c scoring.Card) error {
	return encode(out, c)
}

func encode(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return eris.Wrap(enc.Encode(v), "export: encode json")
}
