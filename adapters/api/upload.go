package api

import (
	"os"
	"path/filepath"
	"strconv"

	"classci/adapters/excel"
	"classci/app"
	"classci/internal/errors"

	"github.com/gin-gonic/gin"
)

// handleUpload estimates intervals from an uploaded .csv or .xlsx sample.
// Form fields: file, label_column, prediction_column, population_size,
// population_flagged_count and the optional confidence_level,
// exact_precision, n_iters, seed.
func (s *Server) handleUpload(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		s.fail(c, errors.InvalidInput("file is required"))
		return
	}

	dir, err := os.MkdirTemp("", "classci-upload-")
	if err != nil {
		s.fail(c, errors.Wrap(err, "failed to stage upload"))
		return
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "sample"+filepath.Ext(file.Filename))
	if err := c.SaveUploadedFile(file, path); err != nil {
		s.fail(c, errors.Wrap(err, "failed to stage upload"))
		return
	}

	labels, predictions, err := excel.ReadSample(path,
		c.DefaultPostForm("label_column", "label"), c.DefaultPostForm("prediction_column", "prediction"))
	if err != nil {
		s.fail(c, err)
		return
	}

	req := app.BinaryRequest{Labels: labels, Predictions: predictions}
	if err := parseUploadForm(c, &req); err != nil {
		s.fail(c, err)
		return
	}
	plot, _ := strconv.ParseBool(c.PostForm("plot"))
	req.PlotFilename = s.plotFilename(plot)

	run, err := s.service.EstimateBinary(c.Request.Context(), req)
	if err != nil {
		s.fail(c, err)
		return
	}
	s.respond(c, run)
}

func parseUploadForm(c *gin.Context, req *app.BinaryRequest) error {
	var err error
	if req.PopulationSize, err = formInt(c, "population_size"); err != nil {
		return err
	}
	if req.PopulationFlaggedCount, err = formInt(c, "population_flagged_count"); err != nil {
		return err
	}
	if v := c.PostForm("confidence_level"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return errors.InvalidInput("confidence_level must be a number")
		}
		req.ConfidenceLevel = &f
	}
	if v := c.PostForm("exact_precision"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return errors.InvalidInput("exact_precision must be a number")
		}
		req.ExactPrecision = &f
	}
	if v := c.PostForm("n_iters"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return errors.InvalidInput("n_iters must be an integer")
		}
		req.Iterations = &n
	}
	if v := c.PostForm("seed"); v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return errors.InvalidInput("seed must be an integer")
		}
		req.Seed = &seed
	}
	return nil
}

func formInt(c *gin.Context, field string) (int, error) {
	v := c.PostForm(field)
	if v == "" {
		return 0, errors.InvalidInput(field + " is required")
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, errors.InvalidInput(field + " must be an integer")
	}
	return n, nil
}
