// Package settlement computes who pays whom at the end of a poker session.
//
// CalculateGross folds game results, the house fee and shared expenses into
// one net position per player. CalculateSettlements turns the same inputs
// into per-reason obligations, nets them pairwise and refuses to propose any
// payment when buy-ins and cash-outs do not add up.
//
// Everything in this package is a pure function of its arguments and is safe
// for concurrent use.
package settlement
