package scoring_test

import (
	"context"
	"testing"

	"github.com/okian/tutormatch/internal/domain/model"
	scoring "github.com/okian/tutormatch/internal/domain/scoring"
	. "github.com/smartystreets/goconvey/convey"
)

func TestRuleScorer_Score(t *testing.T) {
	Convey("Given a rule scorer with default parameters", t, func() {
		scorer := scoring.NewRuleScorer()
		ctx := context.Background()

		baseRequest := model.MatchRequest{
			Topic:            "math",
			RequestedWindows: []string{"Wed 2-4"},
		}
		baseInstructor := model.Instructor{
			ID:           "inst-1",
			Name:         "Dana",
			Expertise:    []string{"math", "physics"},
			Languages:    []string{"english"},
			Availability: []string{"Wed 1-5"},
		}

		Convey("When topic, language, and schedule all line up fully", func() {
			result, err := scorer.Score(ctx, scoring.Input{Request: baseRequest, Instructor: baseInstructor})

			Convey("Then the confidence is the full-overlap base", func() {
				So(err, ShouldBeNil)
				So(result.InstructorID, ShouldEqual, "inst-1")
				So(result.HasOverlap, ShouldBeTrue)
				So(result.Confidence, ShouldEqual, 1.0)
			})
		})

		Convey("When the topic differs only in case", func() {
			req := baseRequest
			req.Topic = "MATH"
			result, err := scorer.Score(ctx, scoring.Input{Request: req, Instructor: baseInstructor})

			Convey("Then it still matches", func() {
				So(err, ShouldBeNil)
				So(result.Confidence, ShouldEqual, 1.0)
			})
		})

		Convey("When the instructor lacks the topic", func() {
			req := baseRequest
			req.Topic = "chemistry"
			result, err := scorer.Score(ctx, scoring.Input{Request: req, Instructor: baseInstructor})

			Convey("Then the confidence is zero even with schedule overlap", func() {
				So(err, ShouldBeNil)
				So(result.HasOverlap, ShouldBeTrue)
				So(result.Confidence, ShouldEqual, 0)
			})
		})

		Convey("When a preferred language is not offered", func() {
			req := baseRequest
			req.PreferredLanguages = []string{"mandarin"}
			result, err := scorer.Score(ctx, scoring.Input{Request: req, Instructor: baseInstructor})

			Convey("Then the confidence is zero", func() {
				So(err, ShouldBeNil)
				So(result.Confidence, ShouldEqual, 0)
			})
		})

		Convey("When no language preference is given", func() {
			result, err := scorer.Score(ctx, scoring.Input{Request: baseRequest, Instructor: baseInstructor})

			Convey("Then language is treated as satisfied", func() {
				So(err, ShouldBeNil)
				So(result.Confidence, ShouldEqual, 1.0)
			})
		})

		Convey("When no availability overlaps", func() {
			inst := baseInstructor
			inst.Availability = []string{"Thu 1-5"}
			result, err := scorer.Score(ctx, scoring.Input{Request: baseRequest, Instructor: inst})

			Convey("Then the confidence is zero", func() {
				So(err, ShouldBeNil)
				So(result.HasOverlap, ShouldBeFalse)
				So(result.Confidence, ShouldEqual, 0)
			})
		})

		Convey("When the overlap is only partial", func() {
			inst := baseInstructor
			inst.Availability = []string{"Wed 2-3"}
			result, err := scorer.Score(ctx, scoring.Input{Request: baseRequest, Instructor: inst})

			Convey("Then the base confidence is negative", func() {
				So(err, ShouldBeNil)
				So(result.Confidence, ShouldEqual, -1.0)
			})
		})

		Convey("When the locations are close", func() {
			req := baseRequest
			req.Location = "10"
			inst := baseInstructor
			inst.Location = "15"
			result, err := scorer.Score(ctx, scoring.Input{Request: req, Instructor: inst})

			Convey("Then the near-proximity bonus applies", func() {
				So(err, ShouldBeNil)
				So(result.Confidence, ShouldEqual, 1.2)
			})
		})

		Convey("When the locations are moderately far apart", func() {
			req := baseRequest
			req.Location = "10"
			inst := baseInstructor
			inst.Location = "55"
			result, err := scorer.Score(ctx, scoring.Input{Request: req, Instructor: inst})

			Convey("Then the far-proximity bonus applies", func() {
				So(err, ShouldBeNil)
				So(result.Confidence, ShouldAlmostEqual, 1.1, 1e-9)
			})
		})

		Convey("When a location is not numeric", func() {
			req := baseRequest
			req.Location = "downtown"
			inst := baseInstructor
			inst.Location = "15"
			result, err := scorer.Score(ctx, scoring.Input{Request: req, Instructor: inst})

			Convey("Then no proximity bonus applies", func() {
				So(err, ShouldBeNil)
				So(result.Confidence, ShouldEqual, 1.0)
			})
		})

		Convey("When the instructor has a strong reputation", func() {
			inst := baseInstructor
			inst.Reputation = model.Reputation{Rating: 4.9, SessionsCompleted: 120}
			result, err := scorer.Score(ctx, scoring.Input{Request: baseRequest, Instructor: inst})

			Convey("Then both reputation bonuses apply", func() {
				So(err, ShouldBeNil)
				So(result.Confidence, ShouldAlmostEqual, 1.2, 1e-9)
			})
		})

		Convey("When the reputation sits below both thresholds", func() {
			inst := baseInstructor
			inst.Reputation = model.Reputation{Rating: 4.7, SessionsCompleted: 49}
			result, err := scorer.Score(ctx, scoring.Input{Request: baseRequest, Instructor: inst})

			Convey("Then no reputation bonus applies", func() {
				So(err, ShouldBeNil)
				So(result.Confidence, ShouldEqual, 1.0)
			})
		})

		Convey("When the context is already cancelled", func() {
			cancelled, cancel := context.WithCancel(context.Background())
			cancel()

			_, err := scorer.Score(cancelled, scoring.Input{Request: baseRequest, Instructor: baseInstructor})
			So(err, ShouldNotBeNil)
		})
	})
}

func TestRuleScorer_PartialBonuses(t *testing.T) {
	Convey("Given an instructor with a partial overlap and strong bonuses", t, func() {
		ctx := context.Background()
		req := model.MatchRequest{
			Topic:            "math",
			RequestedWindows: []string{"Wed 2-4"},
			Location:         "10",
		}
		inst := model.Instructor{
			ID:           "inst-2",
			Expertise:    []string{"math"},
			Availability: []string{"Wed 2-3"},
			Location:     "12",
			Reputation:   model.Reputation{Rating: 4.9, SessionsCompleted: 120},
		}

		Convey("When the order guard is off", func() {
			scorer := scoring.NewRuleScorer()
			result, err := scorer.Score(ctx, scoring.Input{Request: req, Instructor: inst})

			Convey("Then bonuses shift the negative base upward", func() {
				So(err, ShouldBeNil)
				So(result.Confidence, ShouldAlmostEqual, -0.6, 1e-9)
			})
		})

		Convey("When the order guard is on", func() {
			scorer := scoring.NewRuleScorer(scoring.WithOverlapOrderGuard(true))
			result, err := scorer.Score(ctx, scoring.Input{Request: req, Instructor: inst})

			Convey("Then the partial base keeps no bonuses", func() {
				So(err, ShouldBeNil)
				So(result.Confidence, ShouldEqual, -1.0)
			})
		})

		Convey("When the order guard is on and the overlap is full", func() {
			scorer := scoring.NewRuleScorer(scoring.WithOverlapOrderGuard(true))
			full := inst
			full.Availability = []string{"Wed 1-5"}
			result, err := scorer.Score(ctx, scoring.Input{Request: req, Instructor: full})

			Convey("Then the bonuses still apply", func() {
				So(err, ShouldBeNil)
				So(result.Confidence, ShouldAlmostEqual, 1.4, 1e-9)
			})
		})
	})
}

func TestRuleScorer_CustomParameters(t *testing.T) {
	Convey("Given a scorer with custom bonus parameters", t, func() {
		ctx := context.Background()
		scorer := scoring.NewRuleScorer(
			scoring.WithLocationBonuses(5, 0.5, 20, 0.25),
			scoring.WithRatingBonus(4.0, 0.3),
			scoring.WithSessionsBonus(10, 0.2),
		)

		req := model.MatchRequest{
			Topic:            "physics",
			RequestedWindows: []string{"Mon 9am-11am"},
			Location:         "0",
		}
		inst := model.Instructor{
			ID:           "inst-3",
			Expertise:    []string{"physics"},
			Availability: []string{"Mon 8am-12pm"},
			Location:     "4",
			Reputation:   model.Reputation{Rating: 4.2, SessionsCompleted: 15},
		}

		Convey("When every custom bonus fires", func() {
			result, err := scorer.Score(ctx, scoring.Input{Request: req, Instructor: inst})

			Convey("Then the confidence reflects the custom parameters", func() {
				So(err, ShouldBeNil)
				So(result.Confidence, ShouldAlmostEqual, 2.0, 1e-9)
			})
		})
	})
}
