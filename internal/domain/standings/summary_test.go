package standings_test

import (
	"testing"

	"github.com/blocboard/blocboard/internal/domain/model"
	"github.com/blocboard/blocboard/internal/domain/standings"
	. "github.com/smartystreets/goconvey/convey"
)

func TestSummarize(t *testing.T) {
	Convey("Given a division with registrants and ascent loggers", t, func() {
		divID := "div-open"
		df := standings.DivisionFacts{
			Division: model.Division{ID: divID, Name: "Open"},
			Problems: []model.Problem{
				{ID: "p-1", DivisionID: &divID},
				{ID: "p-2", DivisionID: &divID},
			},
			Participants: []model.Participant{
				{UserID: "u-joined-climbed", DisplayName: "Both"},
				{UserID: "u-joined-only", DisplayName: "Spectator"},
			},
			Ascents: []model.Ascent{
				{ProblemID: "p-1", UserID: "u-joined-climbed", DisplayName: "Both", Topped: true, Zone: true},
				{ProblemID: "p-1", UserID: "u-never-joined", DisplayName: "Walkin", Topped: false, Zone: true},
				{ProblemID: "p-2", UserID: "u-joined-climbed", DisplayName: "Both", Topped: true, Zone: true},
			},
		}

		Convey("When summarizing", func() {
			s := standings.Summarize(df)

			Convey("Then participant count is the exact set union", func() {
				// u-joined-climbed counts once despite appearing in both sources.
				So(s.ParticipantCount, ShouldEqual, 3)
			})

			Convey("And tops and zones count ascent rows, not attempts", func() {
				So(s.TotalTops, ShouldEqual, 2)
				So(s.TotalZones, ShouldEqual, 3)
			})

			Convey("And problem count matches the division's problems", func() {
				So(s.ProblemCount, ShouldEqual, 2)
			})
		})
	})

	Convey("Given a division with zero problems", t, func() {
		df := standings.DivisionFacts{
			Division: model.Division{ID: "div-empty", Name: "Empty"},
		}

		Convey("When summarizing", func() {
			s := standings.Summarize(df)

			Convey("Then every counter is zero, never an error", func() {
				So(s.ProblemCount, ShouldEqual, 0)
				So(s.TotalTops, ShouldEqual, 0)
				So(s.TotalZones, ShouldEqual, 0)
				So(s.ParticipantCount, ShouldEqual, 0)
			})
		})
	})

	Convey("Given a registrant who never climbed", t, func() {
		df := standings.DivisionFacts{
			Division:     model.Division{ID: "div-masters", Name: "Masters"},
			Problems:     []model.Problem{{ID: "p-1"}},
			Participants: []model.Participant{{UserID: "u-1", DisplayName: "Quiet"}},
		}

		Convey("When summarizing", func() {
			s := standings.Summarize(df)

			Convey("Then the registrant still counts", func() {
				So(s.ParticipantCount, ShouldEqual, 1)
				So(s.ProblemCount, ShouldEqual, 1)
				So(s.TotalTops, ShouldEqual, 0)
			})
		})
	})
}
