// Package amesprice implements an end-to-end house price prediction
// system for the Ames housing dataset.
//
// The module is organised around a strategy-based preprocessing layer
// and a small linear modelling core:
//
//   - dataframe: a typed columnar table with missing-value tracking,
//     CSV IO, and a bridge to gonum matrices
//   - ingestion: extractors that load zip archives or plain CSV files
//   - preprocessing: swappable strategies for missing values, outlier
//     detection, feature engineering, and a seeded train/test splitter
//   - regression: ordinary least squares with JSON model persistence
//   - metrics: regression metrics and a model evaluator
//   - eda: descriptive statistics and diagnostic plots
//   - pipeline: a step-based training pipeline driven by a YAML config
//   - server: an HTTP prediction API around a persisted model
//
// The cmd directory carries the two entry points: ames-train runs the
// training pipeline, ames-serve exposes a trained model over HTTP.
package amesprice
