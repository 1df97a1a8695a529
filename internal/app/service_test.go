package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/blocboard/blocboard/internal/adapters/facts"
	service "github.com/blocboard/blocboard/internal/app"
	"github.com/blocboard/blocboard/internal/domain/model"
	"github.com/blocboard/blocboard/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	// Initialize logging for tests
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

func TestService_New(t *testing.T) {
	Convey("Given a new service with default options", t, func() {
		svc := service.New()

		Convey("Then it should have sensible defaults", func() {
			So(svc, ShouldNotBeNil)
			stats := svc.GetStats()
			So(stats["factStore"], ShouldEqual, "memory")
			So(stats["defaultPodiumSize"], ShouldEqual, 3)
		})
	})

	Convey("Given a new service with custom options", t, func() {
		svc := service.New(
			service.WithFactStore("memory"),
			service.WithDefaultPodiumSize(5),
		)

		Convey("Then it should be created successfully", func() {
			So(svc, ShouldNotBeNil)
			So(svc.GetStats()["defaultPodiumSize"], ShouldEqual, 5)
		})
	})
}

func TestService_StartStop(t *testing.T) {
	Convey("Given a new service", t, func() {
		svc := service.New()
		defer svc.Stop()

		Convey("When starting the service", func() {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			err := svc.Start(ctx)

			Convey("Then it should start successfully", func() {
				So(err, ShouldBeNil)
				So(svc.GetStats()["started"], ShouldEqual, true)
				So(svc.Repository(), ShouldNotBeNil)
			})

			Convey("And stopping should mark it stopped", func() {
				svc.Stop()
				So(svc.GetStats()["started"], ShouldEqual, false)
			})
		})
	})
}

func TestService_ComputeReport(t *testing.T) {
	Convey("Given a started service with an injected fact store", t, func() {
		store := facts.NewMemStore()
		store.PutCompetition(model.Competition{ID: "comp-1", Title: "Gym League"})
		store.PutDivision(model.Division{ID: "div-a", CompetitionID: "comp-1", Name: "Advanced"})

		svc := service.New(service.WithRepository(store))
		So(svc.Start(context.Background()), ShouldBeNil)
		defer svc.Stop()

		Convey("When computing a report", func() {
			report, err := svc.ComputeCompetitionReport(context.Background(), "comp-1", "", 0)

			Convey("Then it delegates to the engine", func() {
				So(err, ShouldBeNil)
				So(report.Competition.Title, ShouldEqual, "Gym League")
				So(report.Divisions, ShouldHaveLength, 1)
			})
		})
	})

	Convey("Given a service that was never started", t, func() {
		svc := service.New()

		Convey("When computing a report", func() {
			_, err := svc.ComputeCompetitionReport(context.Background(), "comp-1", "", 0)

			Convey("Then it fails", func() {
				So(err, ShouldNotBeNil)
			})
		})
	})
}
