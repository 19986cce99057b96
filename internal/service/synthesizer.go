package service

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/nutrigenomics-server/internal/domain"
)

// Synthesizer is the recommendation rule engine. It walks a finding
// list in catalogue order and, for SNPs that have an associated rule,
// emits recommendation items and food/supplement entries personalized
// against the lifestyle profile.
//
// Dispatch is a fixed table keyed by rsID. SNPs without a rule are
// silently skipped, as are findings without a usable genotype. Output
// is deterministic in content and ordering for identical inputs.
type Synthesizer struct {
	log   *logrus.Logger
	rules map[string]recommendationRule
}

// recommendationRule is one entry of the dispatch table. Apply may
// attach at most one personalized note and any number of
// food/supplement entries per invocation. Escalation conditions are
// enumerated per SNP; there is no generic escalation mechanism.
type recommendationRule struct {
	RSID  string
	Name  string
	Apply func(f *domain.VariantFinding, p *domain.LifestyleProfile, b *bundleBuilder)
}

// NewSynthesizer creates the rule engine with its built-in rule table.
func NewSynthesizer(logger *logrus.Logger) *Synthesizer {
	s := &Synthesizer{
		log:   logger,
		rules: make(map[string]recommendationRule),
	}
	s.initializeRules()
	return s
}

// Synthesize merges the finding list with the lifestyle profile into a
// prioritized, deduplicated recommendation bundle. Findings are
// processed in the order given (catalogue registration order for a full
// analysis), which fixes the relative ordering of every bucket and
// collection.
func (s *Synthesizer) Synthesize(findings []domain.VariantFinding, profile *domain.LifestyleProfile) (*domain.RecommendationBundle, error) {
	if profile == nil {
		return nil, fmt.Errorf("profile is required: %w", domain.ErrInvalidProfile)
	}

	b := newBundleBuilder()
	applied := 0

	for i := range findings {
		f := &findings[i]

		// Findings without an interpreted genotype contribute nothing
		// to any bucket or collection.
		if !f.HasGenotype() {
			continue
		}

		rule, ok := s.rules[f.RSID]
		if !ok {
			continue
		}

		rule.Apply(f, profile, b)
		applied++
	}

	bundle := b.finish()

	s.log.WithFields(logrus.Fields{
		"rules_applied":     applied,
		"high_priority":     len(bundle.HighPriority),
		"moderate_priority": len(bundle.ModeratePriority),
		"general_advice":    len(bundle.GeneralAdvice),
	}).Info("Completed recommendation synthesis")

	return bundle, nil
}

// initializeRules sets up the fixed rsID-keyed dispatch table.
func (s *Synthesizer) initializeRules() {
	s.addRule("rs4988235", "Dairy/Lactose", s.applyLactose)
	s.addRule("rs2187668", "Celiac Risk", s.applyCeliac)
	s.addRule("rs762551", "Caffeine", s.applyCaffeine)
	s.addRule("rs671", "Alcohol", s.applyAlcoholFlush)
	s.addRule("rs1229984", "Alcohol", s.applyAlcoholMetabolism)
	s.addRule("rs1801133", "Folate/B-Vitamins", s.applyFolate)
	s.addRule("rs1801131", "Folate/B-Vitamins", s.applyFolate)
	s.addRule("rs602662", "Vitamin B12", s.applyB12Absorption)
	s.addRule("rs1801394", "Vitamin B12", s.applyB12Utilization)
	s.addRule("rs2228570", "Vitamin D", s.applyVitaminD)
	s.addRule("rs1799945", "Iron", s.applyIron)
	s.addRule("rs174546", "Omega-3", s.applyOmega3)
	s.addRule("rs7903146", "Blood Sugar/Carbohydrates", s.applyCarbohydrate)
	s.addRule("rs9939609", "Weight Management", s.applyWeight)
	s.addRule("rs7501331", "Vitamin A", s.applyBetaCarotene)
	s.addRule("rs7946", "Choline", s.applyCholine)
}

func (s *Synthesizer) addRule(rsid, name string, apply func(*domain.VariantFinding, *domain.LifestyleProfile, *bundleBuilder)) {
	s.rules[rsid] = recommendationRule{RSID: rsid, Name: name, Apply: apply}
}

// item builds the base recommendation item for a finding.
func item(category string, f *domain.VariantFinding) domain.RecommendationItem {
	return domain.RecommendationItem{
		Category:       category,
		GeneticBasis:   f.GeneticBasis(),
		Recommendation: f.Recommendation,
	}
}

// --- Per-SNP rules ---

// applyLactose handles LCT/MCM6 lactase persistence.
func (s *Synthesizer) applyLactose(f *domain.VariantFinding, p *domain.LifestyleProfile, b *bundleBuilder) {
	if f.Risk != domain.RISK_HIGH && f.Risk != domain.RISK_MODERATE {
		return
	}

	rec := item("Dairy/Lactose", f)
	if p.HasDigestiveIssue("bloating", "gas") {
		rec.PersonalizedNote = "You reported digestive issues - lactose intolerance may be contributing."
	}

	if f.Risk == domain.RISK_HIGH {
		b.high(rec)
		b.limit("Regular dairy products")
		b.increase("Lactose-free alternatives")
	} else {
		b.moderate(rec)
	}
}

// applyCeliac handles HLA-DQ2.5 celiac risk.
func (s *Synthesizer) applyCeliac(f *domain.VariantFinding, p *domain.LifestyleProfile, b *bundleBuilder) {
	switch f.Risk {
	case domain.RISK_HIGH:
		rec := item("Celiac Risk", f)
		if p.HasDigestiveIssue("bloating", "diarrhea", "gas") {
			rec.PersonalizedNote = "Consider celiac testing (do NOT eliminate gluten before testing)."
		}
		b.high(rec)
	case domain.RISK_MODERATE:
		b.moderate(item("Celiac Risk", f))
	}
}

// applyCaffeine handles CYP1A2 caffeine metabolism. High-risk (slow
// metabolizer) findings are high priority; reported intake above two
// cups a day adds the personalized warning and a limit entry.
func (s *Synthesizer) applyCaffeine(f *domain.VariantFinding, p *domain.LifestyleProfile, b *bundleBuilder) {
	if f.Risk != domain.RISK_HIGH && f.Risk != domain.RISK_MODERATE {
		return
	}

	rec := item("Caffeine", f)
	if f.Risk == domain.RISK_HIGH {
		if p.CaffeineCupsPerDay > 2 {
			rec.PersonalizedNote = fmt.Sprintf("You drink %d cups/day but are a slow caffeine metabolizer.", p.CaffeineCupsPerDay)
			b.limit("Coffee after noon")
		}
		b.high(rec)
	} else {
		b.moderate(rec)
	}
}

// applyAlcoholFlush handles ALDH2 flush reaction. Only the high-risk
// genotypes carry advice; the wild type needs none.
func (s *Synthesizer) applyAlcoholFlush(f *domain.VariantFinding, p *domain.LifestyleProfile, b *bundleBuilder) {
	if f.Risk != domain.RISK_HIGH {
		return
	}

	rec := item("Alcohol", f)
	if p.AlcoholFrequency == "moderate" || p.AlcoholFrequency == "frequent" {
		rec.PersonalizedNote = fmt.Sprintf("You reported %s alcohol consumption but carry increased health risks from drinking.", p.AlcoholFrequency)
	}
	b.high(rec)
	b.limit("Alcoholic beverages")
}

// applyAlcoholMetabolism handles ADH1B. The fast-metabolizer genotypes
// are protective and land in general advice.
func (s *Synthesizer) applyAlcoholMetabolism(f *domain.VariantFinding, p *domain.LifestyleProfile, b *bundleBuilder) {
	if f.Risk != domain.RISK_PROTECTIVE {
		return
	}
	b.general(item("Alcohol", f))
}

// applyFolate handles both MTHFR variants (C677T and A1298C). Each SNP
// is handled by its own invocation; no compound-genotype reasoning is
// performed.
func (s *Synthesizer) applyFolate(f *domain.VariantFinding, p *domain.LifestyleProfile, b *bundleBuilder) {
	if f.Risk != domain.RISK_HIGH && f.Risk != domain.RISK_MODERATE {
		return
	}

	rec := item("Folate/B-Vitamins", f)
	if f.Risk == domain.RISK_HIGH {
		if p.TakesSupplement("methylfolate") {
			rec.PersonalizedNote = "You already take methylfolate, which matches this result - keep it up."
		}
		b.high(rec)
		b.supplement("Methylfolate (L-5-MTHF)")
	} else {
		b.moderate(rec)
	}
	b.increase("Leafy greens, legumes")
}

// applyB12Absorption handles FUT2 secretor status. A moderate finding
// is escalated to high priority for vegans and vegetarians because the
// dietary route to correction (meat, fish, dairy) is unavailable.
func (s *Synthesizer) applyB12Absorption(f *domain.VariantFinding, p *domain.LifestyleProfile, b *bundleBuilder) {
	if f.Risk != domain.RISK_HIGH && f.Risk != domain.RISK_MODERATE {
		return
	}

	rec := item("Vitamin B12", f)
	escalate := f.Risk == domain.RISK_MODERATE && p.IsPlantBased()
	if escalate {
		rec.PersonalizedNote = fmt.Sprintf("As a %s you cannot rely on animal foods to offset reduced B12 absorption - supplementation is strongly advised.", p.DietType)
		rec.Urgent = true
	}

	if f.Risk == domain.RISK_HIGH || escalate {
		b.high(rec)
		b.supplement("Vitamin B12 (methylcobalamin)")
	} else {
		b.moderate(rec)
		b.increase("B12-rich foods (meat, fish, eggs, dairy)")
	}
}

// applyB12Utilization handles MTRR recycling. Same plant-based
// escalation as FUT2, enumerated separately for this SNP.
func (s *Synthesizer) applyB12Utilization(f *domain.VariantFinding, p *domain.LifestyleProfile, b *bundleBuilder) {
	if f.Risk != domain.RISK_HIGH && f.Risk != domain.RISK_MODERATE {
		return
	}

	rec := item("Vitamin B12", f)
	escalate := f.Risk == domain.RISK_MODERATE && p.IsPlantBased()
	if escalate {
		rec.PersonalizedNote = fmt.Sprintf("Reduced B12 recycling matters more on a %s diet - use a methylcobalamin supplement.", p.DietType)
		rec.Urgent = true
	}

	if f.Risk == domain.RISK_HIGH || escalate {
		b.high(rec)
		b.supplement("Vitamin B12 (methylcobalamin)")
	} else {
		b.moderate(rec)
	}
}

// applyVitaminD handles the VDR FokI receptor variant.
func (s *Synthesizer) applyVitaminD(f *domain.VariantFinding, p *domain.LifestyleProfile, b *bundleBuilder) {
	if f.Risk != domain.RISK_HIGH && f.Risk != domain.RISK_MODERATE {
		return
	}

	rec := item("Vitamin D", f)
	if p.TakesSupplement("vitamin_d") {
		rec.PersonalizedNote = "You already take vitamin D - ask your doctor to check your blood level given this receptor variant."
	}

	if f.Risk == domain.RISK_HIGH {
		b.high(rec)
		b.supplement("Vitamin D3")
	} else {
		b.moderate(rec)
	}
	b.increase("Fatty fish, egg yolks")
}

// applyIron handles HFE H63D iron overload risk.
func (s *Synthesizer) applyIron(f *domain.VariantFinding, p *domain.LifestyleProfile, b *bundleBuilder) {
	if f.Risk != domain.RISK_HIGH && f.Risk != domain.RISK_MODERATE {
		return
	}

	rec := item("Iron", f)
	if p.TakesSupplement("iron") {
		rec.PersonalizedNote = "You reported taking an iron supplement - review it with your doctor given this iron absorption result."
	}

	if f.Risk == domain.RISK_HIGH {
		b.high(rec)
		b.limit("Iron supplements (unless prescribed)")
		b.limit("Excessive red meat")
	} else {
		b.moderate(rec)
	}
}

// applyOmega3 handles FADS1 omega-3 conversion.
func (s *Synthesizer) applyOmega3(f *domain.VariantFinding, p *domain.LifestyleProfile, b *bundleBuilder) {
	if f.Risk != domain.RISK_HIGH && f.Risk != domain.RISK_MODERATE {
		return
	}

	rec := item("Omega-3", f)
	if p.IsPlantBased() {
		rec.PersonalizedNote = fmt.Sprintf("As a %s, consider algae-based omega-3 supplements.", p.DietType)
		b.supplement("Algae omega-3")
	} else {
		b.increase("Fatty fish")
	}

	if f.Risk == domain.RISK_HIGH {
		b.high(rec)
	} else {
		b.moderate(rec)
	}
}

// applyCarbohydrate handles TCF7L2 diabetes risk.
func (s *Synthesizer) applyCarbohydrate(f *domain.VariantFinding, p *domain.LifestyleProfile, b *bundleBuilder) {
	if f.Risk != domain.RISK_HIGH && f.Risk != domain.RISK_MODERATE {
		return
	}

	rec := item("Blood Sugar/Carbohydrates", f)
	if p.ActivityLevel == "sedentary" {
		rec.PersonalizedNote = "Regular exercise substantially improves insulin sensitivity - especially important with this variant."
	} else if p.HasHealthGoal("weight_loss") {
		rec.PersonalizedNote = "A lower-glycemic diet supports both blood sugar control and your weight loss goal."
	}

	if f.Risk == domain.RISK_HIGH {
		b.high(rec)
		b.limit("Refined carbohydrates and sugary drinks")
		b.increase("Low-glycemic whole grains")
	} else {
		b.moderate(rec)
	}
}

// applyWeight handles FTO satiety signaling.
func (s *Synthesizer) applyWeight(f *domain.VariantFinding, p *domain.LifestyleProfile, b *bundleBuilder) {
	if f.Risk != domain.RISK_HIGH && f.Risk != domain.RISK_MODERATE {
		return
	}

	rec := item("Weight Management", f)
	if p.ActivityLevel == "sedentary" {
		rec.PersonalizedNote = "Exercise is particularly effective at counteracting this variant - building regular activity into your routine matters more for you than for most."
	} else if p.HasHealthGoal("weight_loss") {
		rec.PersonalizedNote = "Focus on protein and exercise rather than just calorie restriction."
	}

	if f.Risk == domain.RISK_HIGH {
		b.high(rec)
	} else {
		b.moderate(rec)
	}
	b.increase("High-protein, high-fiber foods")
}

// applyBetaCarotene handles BCMO1 vitamin A conversion.
func (s *Synthesizer) applyBetaCarotene(f *domain.VariantFinding, p *domain.LifestyleProfile, b *bundleBuilder) {
	if f.Risk != domain.RISK_HIGH && f.Risk != domain.RISK_MODERATE {
		return
	}

	rec := item("Vitamin A", f)
	escalate := f.Risk == domain.RISK_MODERATE && p.DietType == "vegan"
	if p.DietType == "vegan" {
		rec.PersonalizedNote = "Plant beta-carotene alone may not cover your vitamin A needs - as a vegan consider a retinol supplement."
		b.supplement("Vitamin A (retinol)")
	} else {
		b.increase("Eggs, dairy, oily fish")
	}

	if f.Risk == domain.RISK_HIGH || escalate {
		b.high(rec)
	} else {
		b.moderate(rec)
	}
}

// applyCholine handles PEMT choline synthesis.
func (s *Synthesizer) applyCholine(f *domain.VariantFinding, p *domain.LifestyleProfile, b *bundleBuilder) {
	if f.Risk != domain.RISK_HIGH && f.Risk != domain.RISK_MODERATE {
		return
	}

	rec := item("Choline", f)
	if p.DietType == "vegan" {
		rec.PersonalizedNote = "Eggs are the richest choline source - on a vegan diet a choline supplement is worth considering."
		b.supplement("Choline")
	} else {
		b.increase("Eggs")
	}

	if f.Risk == domain.RISK_HIGH {
		b.high(rec)
	} else {
		b.moderate(rec)
	}
}

// --- Bundle assembly ---

// bundleBuilder accumulates rule output. Food and supplement entries
// are collected raw and deduplicated at finish, keeping first-seen
// order.
type bundleBuilder struct {
	bundle      *domain.RecommendationBundle
	increases   []string
	limits      []string
	supplements []string
}

func newBundleBuilder() *bundleBuilder {
	return &bundleBuilder{bundle: domain.NewRecommendationBundle()}
}

func (b *bundleBuilder) high(rec domain.RecommendationItem) {
	b.bundle.HighPriority = append(b.bundle.HighPriority, rec)
}

func (b *bundleBuilder) moderate(rec domain.RecommendationItem) {
	b.bundle.ModeratePriority = append(b.bundle.ModeratePriority, rec)
}

func (b *bundleBuilder) general(rec domain.RecommendationItem) {
	b.bundle.GeneralAdvice = append(b.bundle.GeneralAdvice, rec)
}

func (b *bundleBuilder) increase(food string) {
	b.increases = append(b.increases, food)
}

func (b *bundleBuilder) limit(food string) {
	b.limits = append(b.limits, food)
}

func (b *bundleBuilder) supplement(name string) {
	b.supplements = append(b.supplements, name)
}

func (b *bundleBuilder) finish() *domain.RecommendationBundle {
	b.bundle.FoodsToIncrease = dedupe(b.increases)
	b.bundle.FoodsToLimit = dedupe(b.limits)
	b.bundle.SupplementsToConsider = dedupe(b.supplements)
	return b.bundle
}

// dedupe removes repeated entries, preserving the order in which each
// entry was first seen.
func dedupe(entries []string) []string {
	seen := make(map[string]struct{}, len(entries))
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		if _, ok := seen[e]; ok {
			continue
		}
		seen[e] = struct{}{}
		out = append(out, e)
	}
	return out
}
