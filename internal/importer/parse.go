package importer

import (
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"

	"github.com/sells-group/pool-cli/internal/model"
)

// questionNamespace seeds the ids derived for questions imported without one.
var questionNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("pool-cli/questions"))

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"02/01/2006 15:04:05",
	"02/01/2006 15:04",
	"2006-01-02",
}

// parseDate accepts the timestamp layouts spreadsheet exports produce.
// Timestamps without a zone are taken as UTC.
func parseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, eris.Errorf("importer: unrecognized date %q", s)
}

func parseInt(col, s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		// spreadsheets hand back "3.0" for integer cells
		f, ferr := strconv.ParseFloat(s, 64)
		if ferr != nil || f != float64(int(f)) {
			return 0, eris.Errorf("importer: %s: not an integer: %q", col, s)
		}
		n = int(f)
	}
	return n, nil
}

// ParseQuestion maps one sheet row to a question of gameID. A missing id is
// derived from game, table and question ids, so re-importing a sheet updates
// the same rows.
func ParseQuestion(cols columns, row []string, gameID string) (model.Question, error) {
	q := model.Question{
		ID:             cols.get(row, "id"),
		GameID:         gameID,
		TableID:        cols.get(row, "table_id"),
		QuestionID:     cols.get(row, "question_id"),
		QuestionText:   cols.get(row, "question_text"),
		HomeTeam:       cols.get(row, "home_team"),
		AwayTeam:       cols.get(row, "away_team"),
		ValidationList: cols.get(row, "validation_list"),
		ActualResult:   cols.get(row, "actual_result"),
	}
	if q.TableID == "" || q.QuestionID == "" {
		return model.Question{}, eris.New("importer: question row without table_id or question_id")
	}
	var err error
	if q.StageOrder, err = parseInt("stage_order", cols.get(row, "stage_order")); err != nil {
		return model.Question{}, err
	}
	if q.PossiblePoints, err = parseInt("possible_points", cols.get(row, "possible_points")); err != nil {
		return model.Question{}, err
	}
	if q.ID == "" {
		q.ID = questionKey(gameID, q.TableID, q.QuestionID)
	}
	return q, nil
}

// questionKey is the stable id of a question that arrived without one.
func questionKey(gameID, tableID, questionID string) string {
	return uuid.NewSHA1(questionNamespace, []byte(gameID+"/"+tableID+"/"+questionID)).String()
}

// ParsePrediction maps one sheet row to a prediction of gameID. A missing id
// is generated and a missing created_date falls back to now.
func ParsePrediction(cols columns, row []string, gameID string, now time.Time) (model.Prediction, error) {
	p := model.Prediction{
		ID:              cols.get(row, "id"),
		GameID:          gameID,
		ParticipantName: cols.get(row, "participant_name"),
		QuestionID:      cols.get(row, "question_ref"),
		TextPrediction:  cols.get(row, "text_prediction"),
		CreatedDate:     now.UTC(),
	}
	if p.Participant() == "" || p.QuestionID == "" {
		return model.Prediction{}, eris.New("importer: prediction row without participant_name or question_ref")
	}
	if s := cols.get(row, "created_date"); s != "" {
		t, err := parseDate(s)
		if err != nil {
			return model.Prediction{}, err
		}
		p.CreatedDate = t
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return p, nil
}
