package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kilianp07/hotelprice/app"
	"github.com/kilianp07/hotelprice/core/prediction"
	"github.com/kilianp07/hotelprice/infra/logger"
	"github.com/kilianp07/hotelprice/pkg/export"
)

var predictOpts struct {
	hotelID   string
	rating    string
	reviews   string
	distance  string
	amenities string
	checkIn   string
	format    string
}

var predictCmd = &cobra.Command{
	Use:   "predict",
	Short: "Print a 60-day price prediction for one hotel",
	RunE:  runPredict,
}

func init() {
	f := predictCmd.Flags()
	f.StringVar(&predictOpts.hotelID, "hotel-id", "", "hotel identifier used to seed the daily variation")
	f.StringVar(&predictOpts.rating, "rating", "", "guest rating within [0,5]")
	f.StringVar(&predictOpts.reviews, "reviews", "", "number of reviews")
	f.StringVar(&predictOpts.distance, "distance", "", "average distance to points of interest")
	f.StringVar(&predictOpts.amenities, "amenities", "", "number of amenities")
	f.StringVar(&predictOpts.checkIn, "check-in", "", "check-in date (YYYY-MM-DD), defaults to today")
	f.StringVar(&predictOpts.format, "format", string(export.FormatJSON), "output format: json or csv")
	rootCmd.AddCommand(predictCmd)
}

// rawRequest maps the flags onto request fields. Unset flags are omitted so
// that the usual defaults apply.
func rawRequest(cmd *cobra.Command) map[string]any {
	raw := map[string]any{prediction.FieldHotelID: predictOpts.hotelID}
	set := func(flag, field, value string) {
		if cmd.Flags().Changed(flag) {
			raw[field] = value
		}
	}
	set("rating", prediction.FieldRating, predictOpts.rating)
	set("reviews", prediction.FieldReviewsCount, predictOpts.reviews)
	set("distance", prediction.FieldAvgDistance, predictOpts.distance)
	set("amenities", prediction.FieldAmenitiesCount, predictOpts.amenities)
	set("check-in", prediction.FieldCheckInDate, predictOpts.checkIn)
	return raw
}

func runPredict(cmd *cobra.Command, _ []string) error {
	format := export.Format(predictOpts.format)
	if format != export.FormatJSON && format != export.FormatCSV {
		return fmt.Errorf("unsupported format %q", predictOpts.format)
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger.SetLevel(cfg.Logging.Level)
	ctx := withContext(cmd)
	svc := prediction.NewService(app.ResolveModel(ctx, cfg.Model), prediction.WithLogger(logger.New("prediction")))
	res, err := svc.Predict(ctx, rawRequest(cmd))
	if err != nil {
		return err
	}
	return export.Write(cmd.OutOrStdout(), format, export.Quote{
		HotelID:     res.HotelID,
		BasePrice:   res.BasePrice,
		Model:       res.Model,
		Predictions: res.Predictions,
	})
}
