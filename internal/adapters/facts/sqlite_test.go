package facts_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/blocboard/blocboard/internal/adapters/facts"
	. "github.com/smartystreets/goconvey/convey"
)

func TestSQLiteStore_RoundTrip(t *testing.T) {
	Convey("Given a fresh sqlite fact store", t, func() {
		ctx := context.Background()
		path := filepath.Join(t.TempDir(), "facts.db")
		store, err := facts.NewSQLiteStore(ctx, path)
		So(err, ShouldBeNil)
		defer func() { _ = store.Close() }()

		db := store.DB()
		_, err = db.ExecContext(ctx, `INSERT INTO competitions (id, title) VALUES ('comp-1', 'Granite Cup')`)
		So(err, ShouldBeNil)
		_, err = db.ExecContext(ctx, `INSERT INTO divisions (id, competition_id, name, sort_order) VALUES
			('div-a', 'comp-1', 'Advanced', 1),
			('div-b', 'comp-1', 'Beginners', NULL)`)
		So(err, ShouldBeNil)
		_, err = db.ExecContext(ctx, `INSERT INTO problems (id, competition_id, division_id, name) VALUES
			('p-1', 'comp-1', 'div-a', 'Slab'),
			('p-2', 'comp-1', NULL, 'Unset')`)
		So(err, ShouldBeNil)
		_, err = db.ExecContext(ctx, `INSERT INTO users (id, display_name) VALUES ('u-1', 'Ona')`)
		So(err, ShouldBeNil)
		_, err = db.ExecContext(ctx,
			`INSERT INTO participants (competition_id, user_id, division_id, joined_at) VALUES ('comp-1', 'u-1', 'div-a', ?)`,
			time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))
		So(err, ShouldBeNil)
		_, err = db.ExecContext(ctx, `INSERT INTO ascents (problem_id, user_id, topped, top_attempts, zone, zone_attempts)
			VALUES ('p-1', 'u-1', 1, 2, 1, NULL)`)
		So(err, ShouldBeNil)

		Convey("When reading the competition", func() {
			c, err := store.GetCompetition(ctx, "comp-1")

			Convey("Then it round-trips", func() {
				So(err, ShouldBeNil)
				So(c.Title, ShouldEqual, "Granite Cup")
			})
		})

		Convey("When reading an unknown competition", func() {
			_, err := store.GetCompetition(ctx, "comp-404")

			Convey("Then it maps to the not-found kind", func() {
				So(err, ShouldEqual, facts.ErrNotFound)
			})
		})

		Convey("When reading divisions", func() {
			divs, err := store.GetDivisions(ctx, "comp-1")

			Convey("Then nullable sort keys scan as nil", func() {
				So(err, ShouldBeNil)
				So(divs, ShouldHaveLength, 2)
				for _, d := range divs {
					if d.ID == "div-a" {
						So(d.SortOrder, ShouldNotBeNil)
						So(*d.SortOrder, ShouldEqual, 1)
					} else {
						So(d.SortOrder, ShouldBeNil)
					}
				}
			})
		})

		Convey("When reading problems with a division filter", func() {
			probs, err := store.GetProblems(ctx, "comp-1", "div-a")

			Convey("Then only assigned problems return", func() {
				So(err, ShouldBeNil)
				So(probs, ShouldHaveLength, 1)
				So(probs[0].ID, ShouldEqual, "p-1")
			})
		})

		Convey("When reading ascents", func() {
			rows, err := store.GetAscents(ctx, []string{"p-1", "p-2"})

			Convey("Then display names join in and null attempts scan as nil", func() {
				So(err, ShouldBeNil)
				So(rows, ShouldHaveLength, 1)
				So(rows[0].DisplayName, ShouldEqual, "Ona")
				So(rows[0].Topped, ShouldBeTrue)
				So(*rows[0].TopAttempts, ShouldEqual, 2)
				So(rows[0].ZoneAttempts, ShouldBeNil)
			})
		})

		Convey("When reading ascents for no problems", func() {
			rows, err := store.GetAscents(ctx, nil)

			Convey("Then the result is empty without querying", func() {
				So(err, ShouldBeNil)
				So(rows, ShouldBeEmpty)
			})
		})

		Convey("When reading participants", func() {
			rows, err := store.GetParticipants(ctx, "comp-1", "div-a")

			Convey("Then the registration returns with its display name", func() {
				So(err, ShouldBeNil)
				So(rows, ShouldHaveLength, 1)
				So(rows[0].DisplayName, ShouldEqual, "Ona")
			})
		})
	})
}
