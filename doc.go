// Package marginbridge decomposes the period-over-period change of a
// portfolio's aggregate profit margin into additive per-component effects,
// in basis points. It is designed to be exact where money is involved,
// explicit about floating-point tolerances everywhere else, and agnostic
// about where the rows come from.
//
// The core functionalities include:
//   - Portfolio Modeling: components (product lines, channels, regions) with
//     revenue and profit figures over two periods, validated eagerly so that
//     every margin and weight is well defined.
//   - Margin Attribution: a pure, deterministic transform producing one
//     performance effect and one mix effect per component, a portfolio
//     summary, and a reconciliation (tie-out) guard proving the effects add
//     up to the observed margin change.
//   - Data Persistence: encoding and decoding of datasets to and from
//     human-readable, version-controllable formats (JSONL canonically, CSV
//     for spreadsheet interchange).
//   - Report Extraction: JSONPath queries over the report for scripting.
//
// This package serves as the foundational logic for the `mba` command-line
// tool, ensuring that all operations are consistent and based on a single
// source of truth.
package marginbridge
