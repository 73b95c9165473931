package display

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"fundraiser-display/internal/goals"
)

// ErrLoadFailed is returned by Controller.Run when either bootstrap fetch
// failed and the error screen is showing.
var ErrLoadFailed = errors.New("display: loading data failed")

// Data is what a successful load yields.
type Data struct {
	Goals      []goals.Goal
	Percentage int
}

// Load fetches goals and the percentage concurrently. A failed fetch is
// logged on its own and never cancels the other one; the returned error
// joins every failure. A nil logger discards output.
func Load(ctx context.Context, api Fetcher, logger *zerolog.Logger) (Data, error) {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}

	var (
		data          Data
		goalsErr      error
		percentageErr error
		g             errgroup.Group
	)

	g.Go(func() error {
		v, err := api.Percentage(ctx)
		if err != nil {
			logger.Error().Err(err).Msg("Error fetching percentage data")
			percentageErr = err
			return err
		}
		data.Percentage = v
		return nil
	})

	g.Go(func() error {
		list, err := api.Goals(ctx)
		if err != nil {
			logger.Error().Err(err).Msg("Error fetching goals data")
			goalsErr = err
			return err
		}
		data.Goals = list
		return nil
	})

	// A plain Group never cancels, so both fetches always finish and Wait
	// only reports whether one of them failed.
	if g.Wait() == nil {
		return data, nil
	}
	return Data{}, errors.Join(percentageErr, goalsErr)
}
