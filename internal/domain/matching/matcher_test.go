package matching_test

import (
	"context"
	"errors"
	"testing"

	matching "github.com/okian/tutormatch/internal/domain/matching"
	"github.com/okian/tutormatch/internal/domain/model"
	"github.com/okian/tutormatch/internal/domain/scoring"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMatcher_Match(t *testing.T) {
	Convey("Given a matcher with default policies", t, func() {
		m := matching.New()
		ctx := context.Background()

		catalog := []model.Instructor{
			{
				ID:           "inst-jordan",
				Name:         "Jordan",
				Expertise:    []string{"Math", "Statistics"},
				Languages:    []string{"english"},
				Availability: []string{"Fri 11am-1pm", "Tue 2pm-4pm"},
				Reputation:   model.Reputation{Rating: 4.9, SessionsCompleted: 30},
			},
			{
				ID:           "inst-sam",
				Name:         "Sam",
				Expertise:    []string{"Math"},
				Languages:    []string{"english"},
				Availability: []string{"Fri 12pm-1pm"},
				Reputation:   model.Reputation{Rating: 4.5, SessionsCompleted: 10},
			},
			{
				ID:           "inst-kai",
				Name:         "Kai",
				Expertise:    []string{"History"},
				Languages:    []string{"english"},
				Availability: []string{"Fri 11am-1pm"},
			},
		}

		request := model.MatchRequest{
			Topic:            "math",
			RequestedWindows: []string{"Fri 11-1"},
		}

		Convey("When matching a well-formed request", func() {
			results, err := m.Match(ctx, request, catalog)

			Convey("Then full matches rank above partial ones", func() {
				So(err, ShouldBeNil)
				So(len(results), ShouldEqual, 2)
				So(results[0].Instructor.ID, ShouldEqual, "inst-jordan")
				So(results[1].Instructor.ID, ShouldEqual, "inst-sam")
			})

			Convey("Then the top confidence includes the rating bonus", func() {
				So(err, ShouldBeNil)
				So(results[0].Confidence, ShouldAlmostEqual, 1.1, 1e-9)
			})

			Convey("Then available slots keep only overlapping windows", func() {
				So(err, ShouldBeNil)
				So(results[0].AvailableSlots, ShouldResemble, []string{"Fri 11am-1pm"})
			})

			Convey("Then off-topic instructors are excluded", func() {
				So(err, ShouldBeNil)
				for _, r := range results {
					So(r.Instructor.ID, ShouldNotEqual, "inst-kai")
				}
			})
		})

		Convey("When the topic is empty", func() {
			results, err := m.Match(ctx, model.MatchRequest{
				RequestedWindows: []string{"Fri 11-1"},
			}, catalog)

			Convey("Then the result is empty, not an error", func() {
				So(err, ShouldBeNil)
				So(results, ShouldBeEmpty)
			})
		})

		Convey("When the topic is only whitespace", func() {
			results, err := m.Match(ctx, model.MatchRequest{
				Topic:            "   ",
				RequestedWindows: []string{"Fri 11-1"},
			}, catalog)

			So(err, ShouldBeNil)
			So(results, ShouldBeEmpty)
		})

		Convey("When no windows are requested", func() {
			results, err := m.Match(ctx, model.MatchRequest{Topic: "math"}, catalog)

			Convey("Then the result is empty, not an error", func() {
				So(err, ShouldBeNil)
				So(results, ShouldBeEmpty)
			})
		})

		Convey("When the catalog is empty", func() {
			results, err := m.Match(ctx, request, nil)
			So(err, ShouldBeNil)
			So(results, ShouldBeEmpty)
		})

		Convey("When matching twice with the same inputs", func() {
			first, err1 := m.Match(ctx, request, catalog)
			second, err2 := m.Match(ctx, request, catalog)

			Convey("Then the results are identical", func() {
				So(err1, ShouldBeNil)
				So(err2, ShouldBeNil)
				So(second, ShouldResemble, first)
			})
		})
	})
}

func TestMatcher_TieOrdering(t *testing.T) {
	Convey("Given a catalog with identically scoring instructors", t, func() {
		m := matching.New()
		ctx := context.Background()

		catalog := []model.Instructor{
			{ID: "first", Expertise: []string{"math"}, Availability: []string{"Wed 1-5"}},
			{ID: "second", Expertise: []string{"math"}, Availability: []string{"Wed 1-5"}},
			{ID: "third", Expertise: []string{"math"}, Availability: []string{"Wed 1-5"}},
		}
		request := model.MatchRequest{Topic: "math", RequestedWindows: []string{"Wed 2-4"}}

		Convey("When matching", func() {
			results, err := m.Match(ctx, request, catalog)

			Convey("Then ties preserve catalog order", func() {
				So(err, ShouldBeNil)
				So(len(results), ShouldEqual, 3)
				So(results[0].Instructor.ID, ShouldEqual, "first")
				So(results[1].Instructor.ID, ShouldEqual, "second")
				So(results[2].Instructor.ID, ShouldEqual, "third")
			})
		})
	})
}

func TestMatcher_MaxResults(t *testing.T) {
	Convey("Given a matcher with a result cap", t, func() {
		m := matching.New(matching.WithMaxResults(1))
		ctx := context.Background()

		catalog := []model.Instructor{
			{ID: "a", Expertise: []string{"math"}, Availability: []string{"Wed 1-5"}},
			{ID: "b", Expertise: []string{"math"}, Availability: []string{"Wed 1-5"}},
		}
		request := model.MatchRequest{Topic: "math", RequestedWindows: []string{"Wed 2-4"}}

		Convey("When more candidates survive than the cap allows", func() {
			results, err := m.Match(ctx, request, catalog)

			Convey("Then the list is truncated", func() {
				So(err, ShouldBeNil)
				So(len(results), ShouldEqual, 1)
				So(results[0].Instructor.ID, ShouldEqual, "a")
			})
		})
	})
}

func TestMatcher_PartialRanking(t *testing.T) {
	Convey("Given full and partial candidates with bonuses", t, func() {
		ctx := context.Background()
		m := matching.New(matching.WithScorer(scoring.NewRuleScorer(
			scoring.WithOverlapOrderGuard(true),
		)))

		catalog := []model.Instructor{
			{
				ID:           "partial-strong",
				Expertise:    []string{"math"},
				Availability: []string{"Wed 2-3"},
				Reputation:   model.Reputation{Rating: 5.0, SessionsCompleted: 500},
			},
			{
				ID:           "full-plain",
				Expertise:    []string{"math"},
				Availability: []string{"Wed 1-5"},
			},
		}
		request := model.MatchRequest{Topic: "math", RequestedWindows: []string{"Wed 2-4"}}

		Convey("When the order guard keeps bonuses off partial matches", func() {
			results, err := m.Match(ctx, request, catalog)

			Convey("Then the full match always ranks first", func() {
				So(err, ShouldBeNil)
				So(len(results), ShouldEqual, 2)
				So(results[0].Instructor.ID, ShouldEqual, "full-plain")
				So(results[1].Confidence, ShouldEqual, -1.0)
			})
		})
	})
}

func TestMatcher_Best(t *testing.T) {
	Convey("Given a matcher", t, func() {
		m := matching.New()
		ctx := context.Background()

		catalog := []model.Instructor{
			{ID: "only", Expertise: []string{"math"}, Availability: []string{"Wed 1-5"}},
		}

		Convey("When a candidate exists", func() {
			best, err := m.Best(ctx, model.MatchRequest{
				Topic:            "math",
				RequestedWindows: []string{"Wed 2-4"},
			}, catalog)

			So(err, ShouldBeNil)
			So(best.Instructor.ID, ShouldEqual, "only")
		})

		Convey("When nothing matches", func() {
			_, err := m.Best(ctx, model.MatchRequest{
				Topic:            "chemistry",
				RequestedWindows: []string{"Wed 2-4"},
			}, catalog)

			So(errors.Is(err, matching.ErrNoMatch), ShouldBeTrue)
		})
	})
}
