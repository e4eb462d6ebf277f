package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io/ioutil"
	"log"
	"os"
	"path/filepath"
	"time"
)

type Config struct {
	// "vertical" or "slinky"
	DeviceType string `json:"device_type"`
	// configuration of the chosen device type; the other one is nil
	Vertical *VerticalSpec `json:"vertical"`
	Slinky   *SlinkySpec   `json:"slinky"`
	// length of the run period, y
	RunPeriodYears int `json:"run_period_years"`
	// zone time steps per hour
	StepsPerHour int `json:"steps_per_hour"`
	// number of repeated warmup design days before the run period
	WarmupDays int `json:"warmup_days"`
	// day of the year the run period starts on, 1-based
	StartDayOfYear int `json:"start_day_of_year"`
	// path of the hourly inlet condition schedule CSV
	FlowSchedulePath string `json:"flow_schedule_path"`
}

/*
Run one ground heat exchanger simulation.

	Args:
		config_path: path of the simulation condition JSON file
		output_data_dir: path of the output directory
*/
func run(config_path string, output_data_dir string) {
	// create the output directory
	if _, err := os.Stat(output_data_dir); os.IsNotExist(err) {
		os.Mkdir(output_data_dir, 0755)
	}
	if _, err := os.Stat(output_data_dir); os.IsNotExist(err) {
		log.Fatalf("`%s` is not a directory", output_data_dir)
	}

	// read the simulation condition JSON file
	log.Printf("loading simulation condition JSON file")
	file, err := os.Open(config_path)
	if err != nil {
		log.Fatal(err)
	}
	defer file.Close()
	bytes, err := ioutil.ReadAll(file)
	if err != nil {
		log.Fatal(err)
	}
	var cfg Config
	if err := json.Unmarshal(bytes, &cfg); err != nil {
		log.Fatal(err)
	}

	if cfg.RunPeriodYears < 1 {
		cfg.RunPeriodYears = 1
	}
	if cfg.StepsPerHour < 1 {
		cfg.StepsPerHour = 4
	}
	if cfg.StartDayOfYear < 1 {
		cfg.StartDayOfYear = 1
	}

	// build the heat exchanger
	props := NewWaterProperties()
	var ghe GroundHeatExchanger
	switch cfg.DeviceType {
	case "vertical":
		if cfg.Vertical == nil {
			log.Fatal("device_type is vertical but no vertical configuration given")
		}
		ghe, err = NewGLHEVert(cfg.Vertical, props, cfg.RunPeriodYears)
	case "slinky":
		if cfg.Slinky == nil {
			log.Fatal("device_type is slinky but no slinky configuration given")
		}
		ghe, err = NewGLHESlinky(cfg.Slinky, props, cfg.RunPeriodYears)
	default:
		log.Fatalf("unknown device_type `%s`", cfg.DeviceType)
	}
	if err != nil {
		log.Fatal(err)
	}

	// read the inlet condition schedule
	log.Printf("loading flow schedule")
	scd, err := NewFlowSchedule(cfg.FlowSchedulePath)
	if err != nil {
		log.Fatal(err)
	}

	// ---- simulation ----

	if err := ghe.begin_environment(cfg.StartDayOfYear); err != nil {
		log.Fatal(err)
	}

	clk := NewSimulationClock(1.0 / float64(cfg.StepsPerHour))

	// warmup: repeat the same design day
	log.Printf("warmup calculation started")
	clk.set_warmup(true)
	startHour := (cfg.StartDayOfYear - 1) * hrsPerDay
	for d := 0; d < cfg.WarmupDays; d++ {
		for s := 0; s < hrsPerDay*cfg.StepsPerHour; s++ {
			h := startHour + int(clk.current_sim_time())
			if err := ghe.calc_ground_heat_exchanger(clk, scd.inlet_temperature(h), scd.mass_flow_rate(h)); err != nil {
				log.Fatal(err)
			}
			clk.advance()
		}
		clk.restart()
	}

	// run period
	log.Printf("main calculation started")
	clk.set_warmup(false)
	clk.restart()

	nStep := cfg.RunPeriodYears * int(get_days_in_year()) * hrsPerDay * cfg.StepsPerHour
	rec := NewRecorder(nStep)

	for n := 0; n < nStep; n++ {
		h := startHour + int(clk.current_sim_time())
		if err := ghe.calc_ground_heat_exchanger(clk, scd.inlet_temperature(h), scd.mass_flow_rate(h)); err != nil {
			log.Fatal(err)
		}
		rec.recording(clk.current_sim_time(), ghe)
		clk.advance()
	}

	// ---- save the calculation results ----

	result_path := filepath.Join(output_data_dir, "result_glhe.csv")
	log.Printf("Save calculation results data to `%s`", result_path)
	if err := rec.export_csv(result_path); err != nil {
		log.Fatal(err)
	}
}

func main() {
	var config_path string
	flag.StringVar(&config_path, "input", "", "simulation condition JSON file")

	var output_data_dir string
	flag.StringVar(&output_data_dir, "o", ".", "output directory")

	flag.Parse()

	if config_path == "" {
		fmt.Println("usage: glhe_calc -input config.json [-o output_dir]")
		os.Exit(1)
	}

	start := time.Now()

	run(config_path, output_data_dir)

	elapsedTime := time.Since(start)
	log.Printf("elapsed_time: %v [sec]", elapsedTime)
}
