package main

import (
	"fmt"
	"sort"

	"github.com/dustin/go-humanize"
	"github.com/pterm/pterm"

	"github.com/pizofreude/data-career-navigator/internal/store"
)

const topSkills = 10

func printSummary(r *store.Run) error {
	pterm.DefaultSection.Println("Run " + r.ID.String())
	if err := pterm.DefaultTable.WithHasHeader().WithData(statsTable(r)).Render(); err != nil {
		return err
	}

	pterm.DefaultSection.Println("Top skills")
	if err := pterm.DefaultTable.WithHasHeader().WithData(skillsTable(r, topSkills)).Render(); err != nil {
		return err
	}

	pterm.Success.Printfln("%s postings enriched, %s rejected",
		humanize.Comma(int64(r.Result.Stats.Enriched)),
		humanize.Comma(int64(r.Result.Stats.Rejected())))
	return nil
}

func statsTable(r *store.Run) pterm.TableData {
	s := r.Result.Stats
	row := func(name string, n int) []string {
		return []string{name, humanize.Comma(int64(n))}
	}
	return pterm.TableData{
		{"Metric", "Count"},
		row("Input records", s.Input),
		row("Enriched", s.Enriched),
		row("Rejected: empty id", s.RejectedEmptyID),
		row("Rejected: duplicate id", s.RejectedDuplicateID),
		row("Salary parsed", s.SalaryParsed),
		row("Salary parse miss", s.SalaryParseMiss),
		row("Salary invalid", s.SalaryInvalid),
		row("Salary lookup miss", s.SalaryLookupMiss),
		row("Salary implausible", s.SalaryImplausible),
		row("Experience unknown", s.ExperienceUnknown),
		row("No skills found", s.SkillsEmpty),
		row("Work arrangement unknown", s.WorkUnknown),
		row("Employment kind unknown", s.EmploymentUnknown),
		row("Country unknown", s.CountryUnknown),
	}
}

// skillsTable lists the n most frequent skills with their median salary.
func skillsTable(r *store.Run, n int) pterm.TableData {
	medians := make(map[string]*float64, len(r.Tables.SalarySkillStats))
	for _, s := range r.Tables.SalarySkillStats {
		medians[s.Skill] = s.Median
	}

	ranked := append(r.Tables.Skills[:0:0], r.Tables.Skills...)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Frequency != ranked[j].Frequency {
			return ranked[i].Frequency > ranked[j].Frequency
		}
		return ranked[i].Name < ranked[j].Name
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}

	data := pterm.TableData{{"Skill", "Category", "Postings", "Median USD"}}
	for _, s := range ranked {
		median := "n/a"
		if m := medians[s.Name]; m != nil {
			median = fmt.Sprintf("$%s", humanize.Comma(int64(*m)))
		}
		data = append(data, []string{s.Name, s.Category, humanize.Comma(int64(s.Frequency)), median})
	}
	return data
}
