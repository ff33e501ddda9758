package schedule_test

import (
	"context"
	"errors"
	"testing"

	schedule "github.com/okian/tutormatch/internal/domain/schedule"
	. "github.com/smartystreets/goconvey/convey"
)

func TestParseWindow(t *testing.T) {
	Convey("Given the window parser", t, func() {
		Convey("When parsing a day with an explicit range", func() {
			w, err := schedule.ParseWindow("Wed 2pm-4pm")
			So(err, ShouldBeNil)
			So(w.Day, ShouldEqual, "Wed")
			So(w.Start, ShouldEqual, 14)
			So(w.End, ShouldEqual, 16)
		})

		Convey("When parsing a day with a single time", func() {
			Convey("Then a one-hour slot is synthesized", func() {
				w, err := schedule.ParseWindow("Mon 10am")
				So(err, ShouldBeNil)
				So(w.Start, ShouldEqual, 10)
				So(w.End, ShouldEqual, 11)
			})
		})

		Convey("When the range crosses noon with bare tokens", func() {
			Convey("Then the end time is shifted forward twelve hours", func() {
				w, err := schedule.ParseWindow("Fri 11-1")
				So(err, ShouldBeNil)
				So(w.Start, ShouldEqual, 11)
				So(w.End, ShouldEqual, 13)
			})
		})

		Convey("When the range mixes am and pm suffixes", func() {
			w, err := schedule.ParseWindow("Fri 11am-1pm")
			So(err, ShouldBeNil)
			So(w.Start, ShouldEqual, 11)
			So(w.End, ShouldEqual, 13)
		})

		Convey("When the range is inverted beyond repair", func() {
			Convey("Then start and end are swapped", func() {
				// 22-2: shift makes end 14, still before 22, so swap.
				w, err := schedule.ParseWindow("Sat 22-2")
				So(err, ShouldBeNil)
				So(w.Start, ShouldBeLessThanOrEqualTo, w.End)
			})
		})

		Convey("When the window is malformed", func() {
			Convey("Then a missing time part fails", func() {
				_, err := schedule.ParseWindow("Wednesday")
				So(errors.Is(err, schedule.ErrMalformedWindow), ShouldBeTrue)
			})

			Convey("Then an empty string fails", func() {
				_, err := schedule.ParseWindow("")
				So(errors.Is(err, schedule.ErrMalformedWindow), ShouldBeTrue)
			})

			Convey("Then an unparseable time fails", func() {
				_, err := schedule.ParseWindow("Wed noon-late")
				So(errors.Is(err, schedule.ErrMalformedWindow), ShouldBeTrue)
			})
		})
	})
}

func TestClassify(t *testing.T) {
	Convey("Given the overlap classifier", t, func() {
		parse := func(raw string) schedule.Window {
			w, err := schedule.ParseWindow(raw)
			So(err, ShouldBeNil)
			return w
		}

		Convey("When the offered window contains the requested window", func() {
			Convey("Then the class is Full", func() {
				So(schedule.Classify(parse("Wed 2-4"), parse("Wed 1-5")), ShouldEqual, schedule.Full)
			})

			Convey("And exact boundaries still count as containment", func() {
				So(schedule.Classify(parse("Wed 2-4"), parse("Wed 2-4")), ShouldEqual, schedule.Full)
			})
		})

		Convey("When the offered window only partially covers the request", func() {
			Convey("Then the class is Partial", func() {
				So(schedule.Classify(parse("Wed 2-4"), parse("Wed 2-3")), ShouldEqual, schedule.Partial)
				So(schedule.Classify(parse("Wed 2-4"), parse("Wed 3-6")), ShouldEqual, schedule.Partial)
			})
		})

		Convey("When the windows are disjoint", func() {
			So(schedule.Classify(parse("Wed 2-4"), parse("Wed 5-7")), ShouldEqual, schedule.None)
		})

		Convey("When the days differ", func() {
			Convey("Then the class is None regardless of times", func() {
				So(schedule.Classify(parse("Wed 2-4"), parse("Thu 1-5")), ShouldEqual, schedule.None)
			})

			Convey("And day comparison ignores case", func() {
				So(schedule.Classify(parse("wed 2-4"), parse("WED 1-5")), ShouldEqual, schedule.Full)
			})

			Convey("And abbreviations never match full day names", func() {
				So(schedule.Classify(parse("Mon 2-4"), parse("Monday 1-5")), ShouldEqual, schedule.None)
			})
		})
	})
}

func TestClassSign(t *testing.T) {
	Convey("Given the overlap classes", t, func() {
		Convey("Then each maps to its confidence contribution", func() {
			So(schedule.Full.Sign(), ShouldEqual, 1)
			So(schedule.Partial.Sign(), ShouldEqual, -1)
			So(schedule.None.Sign(), ShouldEqual, 0)
		})
	})
}

func TestFirstMatchEvaluator(t *testing.T) {
	Convey("Given a first-match evaluator", t, func() {
		ctx := context.Background()
		eval := schedule.NewFirstMatchEvaluator()

		Convey("When a full-overlap pair exists first", func() {
			ok, class := eval.Evaluate(ctx, []string{"Wed 2-4"}, []string{"Wed 1-5"})
			So(ok, ShouldBeTrue)
			So(class, ShouldEqual, schedule.Full)
		})

		Convey("When the first overlapping pair is partial", func() {
			Convey("Then the scan stops there even if a full pair follows", func() {
				ok, class := eval.Evaluate(ctx,
					[]string{"Wed 2-4"},
					[]string{"Wed 2-3", "Wed 1-5"})
				So(ok, ShouldBeTrue)
				So(class, ShouldEqual, schedule.Partial)
			})
		})

		Convey("When nothing overlaps", func() {
			ok, class := eval.Evaluate(ctx, []string{"Wed 2-4"}, []string{"Thu 1-5"})
			So(ok, ShouldBeFalse)
			So(class, ShouldEqual, schedule.None)
		})

		Convey("When either side is empty", func() {
			ok, _ := eval.Evaluate(ctx, nil, []string{"Wed 1-5"})
			So(ok, ShouldBeFalse)

			ok, _ = eval.Evaluate(ctx, []string{"Wed 2-4"}, nil)
			So(ok, ShouldBeFalse)
		})

		Convey("When a window fails to parse", func() {
			var failures []string
			noisy := schedule.NewFirstMatchEvaluator(
				schedule.WithParseFailureHook(func(raw string, err error) {
					failures = append(failures, raw)
				}),
			)

			Convey("Then it is skipped and later windows still match", func() {
				ok, class := noisy.Evaluate(ctx,
					[]string{"garbage", "Wed 2-4"},
					[]string{"Wed 1-5"})
				So(ok, ShouldBeTrue)
				So(class, ShouldEqual, schedule.Full)
				So(failures, ShouldContain, "garbage")
			})
		})

		Convey("When the context is cancelled", func() {
			cancelled, cancel := context.WithCancel(context.Background())
			cancel()

			ok, class := eval.Evaluate(cancelled, []string{"Wed 2-4"}, []string{"Wed 1-5"})
			So(ok, ShouldBeFalse)
			So(class, ShouldEqual, schedule.None)
		})
	})
}
