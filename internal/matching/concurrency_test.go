package matching

import (
	"sync"
	"testing"

	"github.com/spigell/intern-matcher/internal/records"
)

func TestConcurrentRankingDuringRefit(t *testing.T) {
	small := []records.Internship{
		internship(1, "Data Analyst", "python"),
	}
	large := []records.Internship{
		internship(1, "Data Analyst", "python"),
		internship(2, "UX Designer", "figma"),
		internship(3, "Backend Developer", "go"),
	}

	m := fittedModel(t, small...)
	r := NewRanker(m, nil)

	var wg sync.WaitGroup
	errs := make(chan string, 100)

	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 50; i++ {
			corpus := small
			if i%2 == 0 {
				corpus = large
			}
			if _, err := m.Fit(corpus); err != nil {
				errs <- err.Error()
				return
			}
		}
	}()

	for g := 0; g < 4; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				scored, err := r.ScoreInternshipsForStudent(student(10, "", "python", "figma"))
				if err != nil {
					errs <- err.Error()
					return
				}
				// a reader sees one whole corpus, never a mix
				if n := len(scored); n != len(small) && n != len(large) {
					errs <- "partial corpus observed"
					return
				}
			}
		}()
	}

	wg.Wait()
	close(errs)
	for e := range errs {
		t.Fatal(e)
	}
}
