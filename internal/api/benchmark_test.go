package api

import (
	"fmt"
	"net/http"
	"testing"
)

func BenchmarkListAlerts(b *testing.B) {
	srv := testServer(b, nil)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		rec := request(b, srv, "GET", "/api/v1/alerts?status=new&q=sql", nil)
		if rec.Code != http.StatusOK {
			b.Fatalf("status = %d", rec.Code)
		}
	}
}

func BenchmarkDashboard(b *testing.B) {
	srv := testServer(b, nil)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		rec := request(b, srv, "GET", "/api/v1/dashboard", nil)
		if rec.Code != http.StatusOK {
			b.Fatalf("status = %d", rec.Code)
		}
	}
}

func BenchmarkChart(b *testing.B) {
	srv := testServer(b, nil)
	kinds := []string{"line", "area", "pie", "bar"}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		rec := request(b, srv, "GET", fmt.Sprintf("/api/v1/charts/%s", kinds[i%len(kinds)]), nil)
		if rec.Code != http.StatusOK {
			b.Fatalf("status = %d", rec.Code)
		}
	}
}
