package app

import (
	"fmt"

	"github.com/yungbote/strokesheet/internal/modules/practice/curriculum"
	"github.com/yungbote/strokesheet/internal/modules/practice/sheet"
	"github.com/yungbote/strokesheet/internal/platform/localmedia"
	"github.com/yungbote/strokesheet/internal/platform/logger"
)

// NewSheetService wires the sheet runner over stores with the configured
// converter and curriculum policy.
func NewSheetService(log *logger.Logger, cfg Config, stores Stores) (sheet.Service, error) {
	policy, err := curriculum.LoadPolicy()
	if err != nil {
		return nil, fmt.Errorf("curriculum policy: %w", err)
	}
	conv, err := localmedia.New(log, localmedia.Options{
		Converter: cfg.Converter,
		Binary:    cfg.ConverterBinary,
		Timeout:   cfg.ConvertTimeout,
	})
	if err != nil {
		return nil, err
	}
	return sheet.NewService(sheet.Deps{
		Log:       log,
		Strokes:   stores.Strokes,
		Labels:    stores.Pronunciation,
		Converter: conv,
		Policy:    policy,
		WorkRoot:  cfg.WorkRoot,

		StrokeWeight: cfg.StrokeWeight,
	})
}
