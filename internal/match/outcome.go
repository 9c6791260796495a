package match

const maxRunsPerBall = 7

// Outcome is the resolved effect of a single delivery.
type Outcome struct {
	IsLegal      bool
	BatterRuns   int
	ExtraRuns    int
	TotalRuns    int
	RotateStrike bool
}

// Resolve classifies a ball and computes its run split. Input must already be validated.
func Resolve(in BallInput) Outcome {
	out := Outcome{IsLegal: true, BatterRuns: in.Runs}
	crossed := in.Runs

	if in.Extras == nil {
		out.TotalRuns = in.Runs
	} else {
		extra := in.Extras.Runs
		switch in.Extras.Type {
		case ExtraWide:
			out.IsLegal = false
			out.BatterRuns = 0
			out.TotalRuns = 1 + extra
			crossed = 0
		case ExtraNoBall:
			out.IsLegal = false
			out.TotalRuns = 1 + in.Runs + extra
		case ExtraBye, ExtraLegBye:
			out.BatterRuns = 0
			out.TotalRuns = extra
			crossed = extra
		case ExtraPenalty:
			out.BatterRuns = 0
			out.TotalRuns = extra
			crossed = 0
		default:
			out.TotalRuns = in.Runs
		}
	}

	out.ExtraRuns = out.TotalRuns - out.BatterRuns
	out.RotateStrike = crossed%2 == 1 && !in.IsWicket
	return out
}

// ValidateBallInput rejects malformed scorer input before any state is touched.
func ValidateBallInput(in BallInput) error {
	if in.Runs < 0 || in.Runs > maxRunsPerBall {
		return validationError("runs must be between 0 and %d", maxRunsPerBall)
	}
	if in.Extras != nil {
		if !in.Extras.Type.Valid() {
			return validationError("unknown extras type %q", in.Extras.Type)
		}
		if in.Extras.Runs < 0 || in.Extras.Runs > maxRunsPerBall {
			return validationError("extras runs must be between 0 and %d", maxRunsPerBall)
		}
		if in.Extras.Type == ExtraPenalty && in.Runs > 0 {
			return validationError("penalty runs cannot be combined with runs off the bat")
		}
	}
	if in.IsWicket {
		if in.Wicket == nil {
			return validationError("wicket details are required when is_wicket is set")
		}
		if !in.Wicket.DismissalType.Valid() {
			return validationError("unknown dismissal type %q", in.Wicket.DismissalType)
		}
		if in.Wicket.BatterID == 0 {
			return validationError("dismissed batter is required")
		}
	} else if in.Wicket != nil {
		return validationError("wicket details given without is_wicket")
	}
	return nil
}
