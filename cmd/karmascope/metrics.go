package main

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("karmascope")

var authorityScores = promauto.NewHistogram(prometheus.HistogramOpts{
	Name:    "karmascope_authority_score",
	Help:    "Distribution of computed authority scores",
	Buckets: prometheus.LinearBuckets(0, 10, 11),
})

var analysesCompleted = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "karmascope_analyses_completed",
	Help: "Number of post analyses completed, by risk level",
}, []string{"risk_level"})

var upstreamFailures = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "karmascope_upstream_failures",
	Help: "Number of failed upstream lookups, by kind of lookup and error",
}, []string{"lookup", "error"})

var cacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "karmascope_cache_lookups",
	Help: "Number of cache lookups, by cache name and result",
}, []string{"name", "result"})
