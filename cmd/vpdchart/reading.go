// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/gogpu/vpdchart"
	"github.com/gogpu/vpdchart/zone"
)

// readingFlags describe one measurement and the profile it is judged by.
type readingFlags struct {
	air         float64
	rh          float64
	leaf        float64
	vpd         float64
	crop        string
	stage       string
	orientation string
}

func (r *readingFlags) register(fs *pflag.FlagSet) {
	fs.Float64Var(&r.air, "air", 0, "air temperature, °C (required)")
	fs.Float64Var(&r.rh, "rh", 0, "relative humidity, %")
	fs.Float64Var(&r.leaf, "leaf", 0, "leaf temperature, °C")
	fs.Float64Var(&r.vpd, "vpd", 0, "deficit, kPa; skips the derivation")
	fs.StringVar(&r.crop, "crop", vpdchart.DefaultProfile, "crop profile")
	fs.StringVar(&r.stage, "stage", "", "stage to emphasize and classify against")
	fs.StringVar(&r.orientation, "orientation", "temp-primary", "chart layout: temp-primary or humidity-primary")
}

// request builds a ChartRequest. Optional measurements are set only when
// their flag was given.
func (r *readingFlags) request(cmd *cobra.Command, ps *vpdchart.ProfileSet) (vpdchart.ChartRequest, error) {
	fs := cmd.Flags()
	if !fs.Changed("air") {
		return vpdchart.ChartRequest{}, errors.New("--air is required")
	}
	o, err := zone.ParseOrientation(r.orientation)
	if err != nil {
		return vpdchart.ChartRequest{}, err
	}

	req := vpdchart.ChartRequest{
		AirTemp:     r.air,
		Profile:     ps.Lookup(r.crop),
		Stage:       r.stage,
		Orientation: o,
	}
	if fs.Changed("rh") {
		req.Humidity = vpdchart.Float(r.rh)
	}
	if fs.Changed("leaf") {
		req.LeafTemp = vpdchart.Float(r.leaf)
	}
	if fs.Changed("vpd") {
		req.Deficit = vpdchart.Float(r.vpd)
	}
	return req, nil
}

// report is the JSON form of a reading.
type report struct {
	Deficit     string          `json:"vpd"`
	AirTemp     float64         `json:"air_temp"`
	Humidity    *float64        `json:"rh,omitempty"`
	LeafTemp    *float64        `json:"leaf_temp,omitempty"`
	Method      string          `json:"method"`
	Crop        string          `json:"crop_type"`
	Stage       string          `json:"stage,omitempty"`
	Status      vpdchart.Status `json:"status"`
	Image       []byte          `json:"image,omitempty"`
	ImageFormat string          `json:"image_format,omitempty"`
}

func newReport(req vpdchart.ChartRequest, rd vpdchart.Reading) report {
	return report{
		Deficit:  fmt.Sprintf("%.3f", rd.Deficit),
		AirTemp:  req.AirTemp,
		Humidity: rd.Humidity,
		LeafTemp: rd.LeafTemp,
		Method:   rd.Method.String(),
		Crop:     req.Profile.Name,
		Stage:    req.Stage,
		Status:   rd.Status,
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
