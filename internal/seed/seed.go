package seed

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/yigit/contestguard/internal/app/models"
	"github.com/yigit/contestguard/internal/db"
	"github.com/yigit/contestguard/internal/pkg/helpers"
)

const (
	demoEventName = "Demo Contest"
	demoTestTitle = "Qualification Round"
)

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// CreateDemoData inserts a small contest whose report shows every signal.
// It is idempotent: when the demo test already exists its id is returned.
func CreateDemoData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) (int64, error) {
	existing, err := findDemoTest(ctx, dbPool)
	if err != nil {
		return 0, err
	}
	if existing > 0 {
		lgr.Info().Int64("testId", existing).Msg("Demo contest already present")
		return existing, nil
	}

	contest := buildDemoContest(time.Now().UTC().Truncate(time.Hour).Add(-2 * time.Hour))

	var testID int64
	err = db.WithTransaction(ctx, dbPool, func(ctx context.Context, tx pgx.Tx) error {
		var err error
		testID, err = insertContest(ctx, tx, contest)
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("failed to seed demo contest: %w", err)
	}

	lgr.Info().
		Int64("testId", testID).
		Int("participants", len(contest.participants)).
		Int("teams", len(contest.teams)).
		Msg("Demo contest created")
	return testID, nil
}

func findDemoTest(ctx context.Context, dbPool *pgxpool.Pool) (int64, error) {
	sql, args, err := psql.Select("t.id").
		From("tests t").
		Join("events e ON e.id = t.event_id").
		Where(squirrel.Eq{"e.name": demoEventName, "t.title": demoTestTitle}).
		OrderBy("t.id").
		Limit(1).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("error building SQL: %w", err)
	}

	var id int64
	if err := dbPool.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to look up demo test: %w", err)
	}
	return id, nil
}

// insertReturningID runs an INSERT ... RETURNING id
func insertReturningID(ctx context.Context, tx pgx.Tx, query squirrel.InsertBuilder) (int64, error) {
	sql, args, err := query.Suffix("RETURNING id").ToSql()
	if err != nil {
		return 0, fmt.Errorf("error building SQL: %w", err)
	}
	var id int64
	if err := tx.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

func exec(ctx context.Context, tx pgx.Tx, query squirrel.InsertBuilder) error {
	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}
	_, err = tx.Exec(ctx, sql, args...)
	return err
}

func insertContest(ctx context.Context, tx pgx.Tx, c demoContest) (int64, error) {
	eventID, err := insertReturningID(ctx, tx, psql.Insert("events").Columns("name").Values(c.event))
	if err != nil {
		return 0, fmt.Errorf("insert event: %w", err)
	}

	testID, err := insertReturningID(ctx, tx, psql.Insert("tests").
		Columns("event_id", "title", "starts_at", "ends_at").
		Values(eventID, c.test, c.startsAt, c.startsAt.Add(c.length)))
	if err != nil {
		return 0, fmt.Errorf("insert test: %w", err)
	}

	teamIDs := make([]int64, len(c.teams))
	for i, name := range c.teams {
		teamIDs[i], err = insertReturningID(ctx, tx, psql.Insert("teams").Columns("event_id", "name").Values(eventID, name))
		if err != nil {
			return 0, fmt.Errorf("insert team %q: %w", name, err)
		}
	}

	for _, p := range c.participants {
		participantID, err := insertReturningID(ctx, tx, psql.Insert("participants").
			Columns("first_name", "last_name").
			Values(helpers.StringPtr(p.first), helpers.StringPtr(p.last)))
		if err != nil {
			return 0, fmt.Errorf("insert participant: %w", err)
		}

		if p.team >= 0 {
			err = exec(ctx, tx, psql.Insert("team_members").
				Columns("participant_id", "team_id", "event_id", "display_code").
				Values(participantID, teamIDs[p.team], eventID, helpers.StringPtr(p.code)))
			if err != nil {
				return 0, fmt.Errorf("insert team member: %w", err)
			}
		}

		takerID, err := insertReturningID(ctx, tx, psql.Insert("test_takers").
			Columns("test_id", "participant_id").
			Values(testID, participantID))
		if err != nil {
			return 0, fmt.Errorf("insert taker: %w", err)
		}

		if len(p.answers) > 0 {
			answers := psql.Insert("answers").Columns("taker_id", "question_id", "content", "updated_at")
			for _, a := range p.answers {
				answers = answers.Values(takerID, a.question, a.content, c.startsAt.Add(a.offset))
			}
			if err := exec(ctx, tx, answers); err != nil {
				return 0, fmt.Errorf("insert answers: %w", err)
			}
		}

		if len(p.events) > 0 {
			events := psql.Insert("test_events").Columns("taker_id", "event_type", "occurred_at")
			for _, e := range p.events {
				events = events.Values(takerID, string(e.kind), c.startsAt.Add(e.offset))
			}
			if err := exec(ctx, tx, events); err != nil {
				return 0, fmt.Errorf("insert test events: %w", err)
			}
		}
	}

	return testID, nil
}

// Fixture types. Offsets are relative to the test start.

type demoAnswer struct {
	question int64
	content  string
	offset   time.Duration
}

type demoEvent struct {
	kind   models.EventType
	offset time.Duration
}

type demoParticipant struct {
	first, last string
	team        int // index into demoContest.teams, -1 when teamless
	code        string
	answers     []demoAnswer
	events      []demoEvent
}

type demoContest struct {
	event, test  string
	startsAt     time.Time
	length       time.Duration
	teams        []string
	participants []demoParticipant
}

var (
	demoFirstNames = []string{"Ada", "Alan", "Grace", "Edsger", "Barbara", "Donald", "Frances", "Ken", "Radia", "Niklaus", "Margaret", "Dennis"}
	demoLastNames  = []string{"Lovelace", "Turing", "Hopper", "Dijkstra", "Liskov", "Knuth", "Allen", "Thompson", "Perlman", "Wirth", "Hamilton", "Ritchie"}
	demoSolutions  = []string{"42", "paris", "o(n log n)", "true", "7"}
)

const (
	honestCount  = 20
	colluderTeam = 0
	studyTeam    = 1
)

// buildDemoContest lays out 24 takers: 20 honest ones (three of them in a
// study group), a colluding pair sharing rare answers within seconds, one
// speedster and one taker pasting repeatedly.
func buildDemoContest(startsAt time.Time) demoContest {
	c := demoContest{
		event:    demoEventName,
		test:     demoTestTitle,
		startsAt: startsAt,
		length:   90 * time.Minute,
		teams:    []string{"Night Owls", "Study Group"},
	}

	for i := 0; i < honestCount; i++ {
		p := demoParticipant{
			first: demoFirstNames[i%len(demoFirstNames)],
			last:  demoLastNames[(i*5+i/len(demoFirstNames))%len(demoLastNames)],
			team:  -1,
		}
		if i < 3 {
			p.team = studyTeam
			p.code = fmt.Sprintf("SG%d", i+1)
		}
		for q, solution := range demoSolutions {
			content := solution
			if (i+q)%7 == 0 {
				content = fmt.Sprintf("draft %d", i)
			}
			p.answers = append(p.answers, demoAnswer{
				question: int64(q + 1),
				content:  content,
				offset:   time.Duration(10+q*12)*time.Minute + time.Duration(i*37)*time.Second,
			})
		}
		if i%5 == 0 {
			p.events = append(p.events,
				demoEvent{kind: models.EventTypeBlur, offset: 20 * time.Minute},
				demoEvent{kind: models.EventTypeFocus, offset: 21 * time.Minute},
			)
		}
		c.participants = append(c.participants, p)
	}

	for m, name := range [][2]string{{"Eve", "Mallory"}, {"Trudy", ""}} {
		p := demoParticipant{first: name[0], last: name[1], team: colluderTeam, code: fmt.Sprintf("NO%d", m+1)}
		for q := range demoSolutions {
			p.answers = append(p.answers, demoAnswer{
				question: int64(q + 1),
				content:  fmt.Sprintf("x%d = 17/3", q+1),
				offset:   50*time.Minute + time.Duration(q*2+m)*time.Second,
			})
		}
		c.participants = append(c.participants, p)
	}

	speedster := demoParticipant{first: "Usain", last: "Quick", team: -1}
	for q, solution := range demoSolutions {
		speedster.answers = append(speedster.answers, demoAnswer{
			question: int64(q + 1),
			content:  solution,
			offset:   2*time.Minute + time.Duration(q*20)*time.Second,
		})
	}
	c.participants = append(c.participants, speedster)

	paster := demoParticipant{first: "Carl", last: "Clipboard", team: -1}
	for q, solution := range demoSolutions {
		paster.answers = append(paster.answers, demoAnswer{
			question: int64(q + 1),
			content:  solution,
			offset:   time.Duration(15+q*10) * time.Minute,
		})
		paster.events = append(paster.events, demoEvent{kind: models.EventTypePaste, offset: time.Duration(15+q*10)*time.Minute - 10*time.Second})
	}
	c.participants = append(c.participants, paster)

	return c
}
