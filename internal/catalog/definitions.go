package catalog

import (
	"github.com/nutrigenomics-server/internal/domain"
)

// rule is a shorthand constructor for the definition table below. The
// source citation is filled in from the definition at registration.
func rule(risk domain.RiskLevel, interpretation, recommendation string) domain.InterpretationRule {
	return domain.InterpretationRule{
		Risk:           risk,
		Interpretation: interpretation,
		Recommendation: recommendation,
	}
}

// definitions returns the authoritative 25-SNP nutrigenomics table in
// registration order. Rule keys are canonical (alleles sorted); where a
// source file may report the complementary strand, the minus-strand
// genotypes are enumerated as their own keys rather than derived.
func definitions() []domain.SNPDefinition {
	return []domain.SNPDefinition{

		// --- Digestive & food tolerance ---

		{
			RSID:      "rs4988235",
			Gene:      "LCT/MCM6",
			Condition: "Lactose Intolerance",
			Category:  domain.CategoryDigestion,
			Source:    "SNPedia rs4988235; PMID: 15114531",
			Interpretations: map[string]domain.InterpretationRule{
				"TT": rule(domain.RISK_LOW, "Lactase persistent - you can digest dairy normally",
					"No dairy restrictions needed based on this gene."),
				"CT": rule(domain.RISK_MODERATE, "Intermediate lactase persistence (~65% enzyme activity)",
					"You may tolerate moderate dairy. Monitor for bloating, gas, or discomfort."),
				"CC": rule(domain.RISK_HIGH, "Lactase non-persistent - likely lactose intolerant",
					"Consider lactose-free dairy, lactase supplements, or plant-based milk."),
				// Minus strand
				"AA": rule(domain.RISK_LOW, "Lactase persistent (minus strand)",
					"No dairy restrictions needed."),
				"AG": rule(domain.RISK_MODERATE, "Intermediate lactase persistence (minus strand)",
					"Monitor for dairy-related symptoms."),
				"GG": rule(domain.RISK_HIGH, "Lactase non-persistent (minus strand)",
					"Consider lactose-free alternatives."),
			},
		},
		{
			RSID:      "rs2187668",
			Gene:      "HLA-DQ2.5",
			Condition: "Celiac Disease Risk",
			Category:  domain.CategoryDigestion,
			Source:    "SNPedia rs2187668; PMID: 18311140",
			Interpretations: map[string]domain.InterpretationRule{
				"TT": rule(domain.RISK_LOW, "Does not carry HLA-DQ2.5 risk allele",
					"Low genetic risk for celiac disease. This does not rule out gluten sensitivity."),
				"CT": rule(domain.RISK_MODERATE, "Carrier of one HLA-DQ2.5 risk allele",
					"Moderate celiac risk. If you have digestive issues, consider celiac testing."),
				"CC": rule(domain.RISK_HIGH, "Homozygous for HLA-DQ2.5 risk allele",
					"Higher celiac risk. Get tested if you have symptoms. Do NOT eliminate gluten before testing."),
				"AA": rule(domain.RISK_LOW, "Low celiac risk (minus strand)", "Low genetic risk for celiac."),
				"AG": rule(domain.RISK_MODERATE, "Moderate celiac risk (minus strand)", "Consider testing if symptomatic."),
				"GG": rule(domain.RISK_HIGH, "Higher celiac risk (minus strand)", "Consider celiac testing if symptomatic."),
			},
		},
		{
			RSID:      "rs1726866",
			Gene:      "TAS2R38",
			Condition: "Bitter Taste Perception",
			Category:  domain.CategoryTaste,
			Source:    "PMID: 12595690; SNPedia rs1726866",
			Interpretations: map[string]domain.InterpretationRule{
				"CC": rule(domain.RISK_LOW, "Non-taster - reduced sensitivity to bitter compounds (PTC/PROP)",
					"You may find bitter vegetables (broccoli, kale, Brussels sprouts) more palatable. Include them regularly for their health benefits."),
				"CT": rule(domain.RISK_MODERATE, "Medium taster - moderate bitter sensitivity",
					"You have average bitter taste sensitivity. Cooking methods like roasting can reduce bitterness in vegetables."),
				"TT": rule(domain.RISK_HIGH, "Super-taster - highly sensitive to bitter compounds",
					"You may avoid healthy bitter vegetables. Try masking bitterness with olive oil, garlic, or cheese. Roasting reduces bitterness."),
				"GG": rule(domain.RISK_LOW, "Non-taster (minus strand)", "Bitter vegetables should be easy to enjoy."),
				"AG": rule(domain.RISK_MODERATE, "Medium taster (minus strand)", "Average bitter sensitivity."),
				"AA": rule(domain.RISK_HIGH, "Super-taster (minus strand)", "Try cooking methods to reduce vegetable bitterness."),
			},
		},
		{
			RSID:      "rs1761667",
			Gene:      "CD36",
			Condition: "Fat Taste Sensitivity",
			Category:  domain.CategoryTaste,
			Source:    "PMID: 21697823; SNPedia rs1761667",
			Interpretations: map[string]domain.InterpretationRule{
				"GG": rule(domain.RISK_LOW, "Normal fat taste sensitivity",
					"You can detect fat in foods normally, which helps regulate fat intake naturally."),
				"AG": rule(domain.RISK_MODERATE, "Reduced fat taste sensitivity",
					"You may have slightly reduced ability to taste fat, potentially leading to higher fat consumption."),
				"AA": rule(domain.RISK_HIGH, "Low fat taste sensitivity",
					"You may not taste fat well, leading to overconsumption. Be mindful of portion sizes for fatty foods."),
			},
		},

		// --- Caffeine & alcohol ---

		{
			RSID:      "rs762551",
			Gene:      "CYP1A2",
			Condition: "Caffeine Metabolism",
			Category:  domain.CategoryMetabolism,
			Source:    "PMID: 16522833; SNPedia rs762551",
			Interpretations: map[string]domain.InterpretationRule{
				"AA": rule(domain.RISK_LOW, "Fast caffeine metabolizer",
					"You process caffeine quickly. 3-4 cups of coffee/day is generally safe. May have cardiovascular benefits."),
				"AC": rule(domain.RISK_MODERATE, "Intermediate caffeine metabolizer",
					"Limit to 1-2 cups coffee/day. Avoid caffeine after 2 PM."),
				"CC": rule(domain.RISK_HIGH, "Slow caffeine metabolizer",
					"Limit to 1 cup coffee before noon. Slow metabolism increases heart disease risk with high caffeine intake."),
			},
		},
		{
			RSID:      "rs671",
			Gene:      "ALDH2",
			Condition: "Alcohol Flush Reaction",
			Category:  domain.CategoryMetabolism,
			Source:    "PMID: 24671021; SNPedia rs671",
			Interpretations: map[string]domain.InterpretationRule{
				"GG": rule(domain.RISK_LOW, "Normal alcohol metabolism (functional ALDH2 enzyme)",
					"You metabolize alcohol normally. Standard alcohol guidelines apply (moderation)."),
				"AG": rule(domain.RISK_HIGH, "Reduced ALDH2 activity - alcohol flush reaction",
					"You likely experience facial flushing with alcohol. Increased esophageal cancer risk with regular drinking. Limit alcohol significantly."),
				"AA": rule(domain.RISK_HIGH, "Very low ALDH2 activity - severe alcohol intolerance",
					"Strong alcohol intolerance. Even small amounts cause flushing and nausea. Avoid alcohol - significantly increased cancer risk."),
			},
		},
		{
			RSID:      "rs1229984",
			Gene:      "ADH1B",
			Condition: "Alcohol Metabolism Speed",
			Category:  domain.CategoryMetabolism,
			Source:    "PMID: 21115004; SNPedia rs1229984",
			Interpretations: map[string]domain.InterpretationRule{
				"CC": rule(domain.RISK_MODERATE, "Slow alcohol metabolism - typical for most Europeans",
					"Standard alcohol metabolism. Follow general moderation guidelines."),
				"CT": rule(domain.RISK_PROTECTIVE, "Faster alcohol metabolism - may be protective against alcoholism",
					"You metabolize alcohol faster, which may reduce risk of alcohol dependence."),
				"TT": rule(domain.RISK_PROTECTIVE, "Very fast alcohol metabolism - protective effect",
					"Very fast alcohol metabolism. Associated with lower risk of alcohol dependence."),
			},
		},

		// --- Vitamins & minerals ---

		{
			RSID:      "rs1801133",
			Gene:      "MTHFR",
			Condition: "Folate Metabolism (C677T)",
			Category:  domain.CategoryVitamins,
			Source:    "PMID: 24494987; SNPedia rs1801133",
			Interpretations: map[string]domain.InterpretationRule{
				"GG": rule(domain.RISK_LOW, "Normal MTHFR enzyme activity (100%)",
					"Normal folate metabolism. Standard dietary folate intake is sufficient."),
				"AG": rule(domain.RISK_MODERATE, "Reduced MTHFR activity (~65%)",
					"Increase leafy greens, legumes, and fortified foods. Consider methylfolate supplement."),
				"AA": rule(domain.RISK_HIGH, "Significantly reduced MTHFR activity (~30%)",
					"Prioritize methylfolate (not folic acid). Eat folate-rich foods daily. Consider B-complex with methylated B vitamins."),
				"CC": rule(domain.RISK_LOW, "Normal MTHFR (minus strand)", "Normal folate metabolism."),
				"CT": rule(domain.RISK_MODERATE, "Reduced MTHFR (minus strand)", "Consider methylfolate."),
				"TT": rule(domain.RISK_HIGH, "Low MTHFR activity (minus strand)", "Prioritize methylated B vitamins."),
			},
		},
		{
			RSID:      "rs1801131",
			Gene:      "MTHFR",
			Condition: "Folate Metabolism (A1298C)",
			Category:  domain.CategoryVitamins,
			Source:    "PMID: 24494987; SNPedia rs1801131",
			Interpretations: map[string]domain.InterpretationRule{
				"TT": rule(domain.RISK_LOW, "Normal MTHFR A1298C function",
					"This variant is normal. Check C677T (rs1801133) as well."),
				"GT": rule(domain.RISK_MODERATE, "One copy of A1298C variant - mild effect",
					"Mild impact on folate. More significant if combined with C677T variant."),
				"GG": rule(domain.RISK_MODERATE, "Two copies of A1298C variant",
					"Reduced BH4 production. May affect neurotransmitter synthesis. Support with methylfolate and B12."),
				"AA": rule(domain.RISK_LOW, "Normal (minus strand)", "Normal function."),
				"AC": rule(domain.RISK_MODERATE, "One variant copy (minus strand)", "Mild impact."),
				"CC": rule(domain.RISK_MODERATE, "Two variant copies (minus strand)", "Support with methylated B vitamins."),
			},
		},
		{
			RSID:      "rs602662",
			Gene:      "FUT2",
			Condition: "Vitamin B12 Absorption",
			Category:  domain.CategoryVitamins,
			Source:    "PMID: 19303062; SNPedia rs602662",
			Interpretations: map[string]domain.InterpretationRule{
				"GG": rule(domain.RISK_LOW, "Secretor status - normal B12 absorption",
					"Normal B12 absorption from food. Standard dietary sources sufficient."),
				"AG": rule(domain.RISK_MODERATE, "Reduced secretor status - may have lower B12",
					"May have slightly lower B12 levels. Include B12-rich foods regularly (meat, fish, eggs, dairy)."),
				"AA": rule(domain.RISK_HIGH, "Non-secretor - reduced B12 absorption",
					"Higher risk of B12 deficiency. Consider B12 supplements (methylcobalamin). Regular B12 blood tests recommended."),
			},
		},
		{
			RSID:      "rs1801394",
			Gene:      "MTRR",
			Condition: "B12 Utilization",
			Category:  domain.CategoryVitamins,
			Source:    "PMID: 19116920; SNPedia rs1801394",
			Interpretations: map[string]domain.InterpretationRule{
				"AA": rule(domain.RISK_LOW, "Normal MTRR function - efficient B12 recycling",
					"Normal B12 utilization. Standard intake sufficient."),
				"AG": rule(domain.RISK_MODERATE, "Reduced MTRR efficiency",
					"May need higher B12 intake. Use methylcobalamin form."),
				"GG": rule(domain.RISK_HIGH, "Significantly reduced B12 recycling",
					"Higher B12 requirements. Consider methylcobalamin supplement. Especially important if vegetarian/vegan."),
			},
		},
		{
			RSID:      "rs2228570",
			Gene:      "VDR",
			Condition: "Vitamin D Receptor (FokI)",
			Category:  domain.CategoryVitamins,
			Source:    "PMID: 27188403; SNPedia rs2228570",
			Interpretations: map[string]domain.InterpretationRule{
				"CC": rule(domain.RISK_LOW, "Optimal VDR function - efficient vitamin D response",
					"Your cells respond well to vitamin D. Maintain adequate intake (sun, food, supplements if needed)."),
				"CT": rule(domain.RISK_MODERATE, "Intermediate VDR function",
					"Slightly reduced vitamin D response. Ensure adequate vitamin D through sun, fatty fish, or supplements."),
				"TT": rule(domain.RISK_HIGH, "Reduced VDR function",
					"May need higher vitamin D levels for optimal function. Consider supplements. Test blood levels annually."),
				"AA": rule(domain.RISK_LOW, "Optimal VDR (minus strand)", "Efficient vitamin D response."),
				"AG": rule(domain.RISK_MODERATE, "Intermediate VDR (minus strand)", "Ensure adequate vitamin D."),
				"GG": rule(domain.RISK_HIGH, "Reduced VDR (minus strand)", "May need higher vitamin D intake."),
			},
		},
		{
			RSID:      "rs7041",
			Gene:      "GC",
			Condition: "Vitamin D Transport",
			Category:  domain.CategoryVitamins,
			Source:    "PMID: 20541252; SNPedia rs7041",
			Interpretations: map[string]domain.InterpretationRule{
				"GG": rule(domain.RISK_LOW, "Normal vitamin D binding protein levels",
					"Normal vitamin D transport. Standard recommendations apply."),
				"GT": rule(domain.RISK_MODERATE, "Slightly lower vitamin D binding protein",
					"May have lower total vitamin D but similar free (active) vitamin D."),
				"TT": rule(domain.RISK_HIGH, "Lower vitamin D binding protein",
					"Lower total vitamin D levels common but may not affect free vitamin D. Discuss with doctor if levels are low."),
			},
		},
		{
			RSID:      "rs33972313",
			Gene:      "SLC23A1",
			Condition: "Vitamin C Absorption",
			Category:  domain.CategoryVitamins,
			Source:    "PMID: 20200966; SNPedia rs33972313",
			Interpretations: map[string]domain.InterpretationRule{
				"CC": rule(domain.RISK_LOW, "Normal vitamin C transporter function",
					"Normal vitamin C absorption. Standard intake from fruits and vegetables is sufficient."),
				"CT": rule(domain.RISK_MODERATE, "Reduced vitamin C transport efficiency",
					"May benefit from higher vitamin C intake. Include citrus, berries, peppers, and broccoli daily."),
				"TT": rule(domain.RISK_HIGH, "Significantly reduced vitamin C absorption",
					"Higher vitamin C requirements. Eat vitamin C-rich foods with every meal. Consider supplements."),
			},
		},
		{
			RSID:      "rs1799945",
			Gene:      "HFE",
			Condition: "Iron Absorption (H63D)",
			Category:  domain.CategoryMinerals,
			Source:    "PMID: 19159930; SNPedia rs1799945",
			Interpretations: map[string]domain.InterpretationRule{
				"CC": rule(domain.RISK_LOW, "Normal iron absorption",
					"Standard iron intake appropriate. No genetic predisposition to iron overload."),
				"CG": rule(domain.RISK_MODERATE, "Carrier of H63D variant - slightly increased iron absorption",
					"Mild increased iron absorption. Monitor ferritin levels. Avoid iron supplements unless prescribed."),
				"GG": rule(domain.RISK_HIGH, "Homozygous H63D - increased iron absorption risk",
					"Monitor iron and ferritin annually. Avoid iron supplements and excessive red meat. Donate blood if levels are high."),
			},
		},

		// --- Macronutrient metabolism ---

		{
			RSID:      "rs174546",
			Gene:      "FADS1",
			Condition: "Omega-3/6 Fatty Acid Metabolism",
			Category:  domain.CategoryFats,
			Source:    "PMID: 21829377; SNPedia rs174546",
			Interpretations: map[string]domain.InterpretationRule{
				"CC": rule(domain.RISK_LOW, "Efficient conversion of plant omega-3 to EPA/DHA",
					"You can convert plant sources (flax, chia, walnuts) to active omega-3s. Still beneficial to eat fatty fish."),
				"CT": rule(domain.RISK_MODERATE, "Intermediate omega-3 conversion ability",
					"Include both plant omega-3s and fatty fish (salmon, sardines, mackerel) 2-3 times per week."),
				"TT": rule(domain.RISK_HIGH, "Reduced ability to convert plant omega-3 to EPA/DHA",
					"Prioritize preformed EPA/DHA from fatty fish or algae supplements. Plant sources alone may be insufficient."),
			},
		},
		{
			RSID:      "rs5082",
			Gene:      "APOA2",
			Condition: "Saturated Fat Sensitivity",
			Category:  domain.CategoryFats,
			Source:    "PMID: 19858173; SNPedia rs5082",
			Interpretations: map[string]domain.InterpretationRule{
				"GG": rule(domain.RISK_LOW, "Normal response to saturated fat",
					"Standard saturated fat guidelines apply. Focus on overall diet quality."),
				"AG": rule(domain.RISK_LOW, "Normal response to saturated fat",
					"No special saturated fat restrictions needed."),
				"AA": rule(domain.RISK_HIGH, "Increased weight gain with high saturated fat intake",
					"Limit saturated fat to <22g/day. Choose olive oil, avocados, nuts over butter and coconut oil. Keto/Paleo diets may not suit you."),
			},
		},
		{
			RSID:      "rs7903146",
			Gene:      "TCF7L2",
			Condition: "Carbohydrate Metabolism / Diabetes Risk",
			Category:  domain.CategoryCarbs,
			Source:    "PMID: 22693455; SNPedia rs7903146",
			Interpretations: map[string]domain.InterpretationRule{
				"CC": rule(domain.RISK_LOW, "Normal carbohydrate metabolism and insulin secretion",
					"Standard carbohydrate intake is fine. Focus on whole grains and fiber."),
				"CT": rule(domain.RISK_MODERATE, "Increased Type 2 diabetes risk (~40% higher)",
					"Prioritize low-glycemic carbs. Include protein with meals. Regular exercise helps significantly."),
				"TT": rule(domain.RISK_HIGH, "Significantly increased Type 2 diabetes risk (~80% higher)",
					"Limit refined carbs and grains. High-protein, Mediterranean-style diet recommended. Regular blood sugar monitoring advised."),
			},
		},
		{
			RSID:      "rs9939609",
			Gene:      "FTO",
			Condition: "Obesity Risk / Satiety",
			Category:  domain.CategoryWeight,
			Source:    "PMID: 17434869; SNPedia rs9939609",
			Interpretations: map[string]domain.InterpretationRule{
				"TT": rule(domain.RISK_LOW, "Lower obesity risk - normal satiety signaling",
					"Standard diet and exercise recommendations apply."),
				"AT": rule(domain.RISK_MODERATE, "Moderately increased obesity risk (~30%)",
					"Focus on high-protein, high-fiber meals for satiety. Regular physical activity is especially important."),
				"AA": rule(domain.RISK_HIGH, "Increased obesity risk (~70%) - reduced satiety signaling",
					"Prioritize protein and fiber for fullness. Exercise is particularly effective at counteracting this variant. Mindful eating practices help."),
			},
		},
		{
			RSID:      "rs4341",
			Gene:      "ACE",
			Condition: "Exercise Response / Muscle Type",
			Category:  domain.CategoryFitness,
			Source:    "PMID: 18043716; SNPedia rs4341",
			Interpretations: map[string]domain.InterpretationRule{
				"GG": rule(domain.RISK_LOW, "Higher ACE activity - may favor power/strength activities",
					"May respond well to strength training and high-intensity exercise. Protein timing around workouts may be beneficial."),
				"CG": rule(domain.RISK_LOW, "Intermediate ACE activity - balanced response",
					"Balanced response to both endurance and strength training. Varied exercise program recommended."),
				"CC": rule(domain.RISK_LOW, "Lower ACE activity - may favor endurance activities",
					"May respond better to endurance exercise. Still important to include strength training for muscle maintenance."),
			},
		},
		{
			RSID:      "rs7412",
			Gene:      "APOE",
			Condition: "Fat Metabolism (APOE e2/e3/e4)",
			Category:  domain.CategoryFats,
			Source:    "PMID: 24382546; SNPedia rs7412",
			Interpretations: map[string]domain.InterpretationRule{
				"CC": rule(domain.RISK_LOW, "Part of APOE genotyping - see combined result",
					"This SNP combines with rs429358 to determine APOE type. e3/e3 is most common and neutral."),
				"CT": rule(domain.RISK_MODERATE, "May indicate APOE e2 carrier",
					"If APOE e2 carrier: generally favorable for cholesterol but may need higher fat-soluble vitamin intake."),
				"TT": rule(domain.RISK_MODERATE, "APOE e2/e2 possible",
					"APOE e2 is generally protective for heart disease but may increase triglycerides with high-carb diet."),
			},
		},

		// --- Antioxidants & detox ---

		{
			RSID:      "rs4880",
			Gene:      "SOD2",
			Condition: "Antioxidant Capacity",
			Category:  domain.CategoryAntioxidants,
			Source:    "PMID: 15361839; SNPedia rs4880",
			Interpretations: map[string]domain.InterpretationRule{
				"AA": rule(domain.RISK_MODERATE, "Higher SOD2 in mitochondria - may increase oxidative stress in some contexts",
					"Prioritize antioxidant-rich foods: berries, leafy greens, colorful vegetables. Avoid excessive iron/manganese supplements."),
				"AG": rule(domain.RISK_LOW, "Intermediate SOD2 activity",
					"Balanced antioxidant needs. Eat a variety of colorful fruits and vegetables."),
				"GG": rule(domain.RISK_LOW, "Normal SOD2 activity",
					"Standard antioxidant intake from diet is sufficient."),
				"TT": rule(domain.RISK_MODERATE, "Higher SOD2 (minus strand)", "Increase antioxidant intake."),
				"CT": rule(domain.RISK_LOW, "Intermediate SOD2 (minus strand)", "Balanced antioxidant needs."),
				"CC": rule(domain.RISK_LOW, "Normal SOD2 (minus strand)", "Standard antioxidant intake sufficient."),
			},
		},
		{
			RSID:      "rs1695",
			Gene:      "GSTP1",
			Condition: "Glutathione Detoxification",
			Category:  domain.CategoryDetox,
			Source:    "PMID: 19131662; SNPedia rs1695",
			Interpretations: map[string]domain.InterpretationRule{
				"AA": rule(domain.RISK_LOW, "Normal glutathione S-transferase activity",
					"Normal detoxification capacity. Include cruciferous vegetables for additional support."),
				"AG": rule(domain.RISK_MODERATE, "Reduced detoxification enzyme activity",
					"Increase cruciferous vegetables (broccoli, cauliflower, Brussels sprouts). Support glutathione with sulfur-rich foods."),
				"GG": rule(domain.RISK_HIGH, "Significantly reduced GSTP1 activity",
					"Prioritize detox support: cruciferous vegetables, garlic, onions. Consider N-acetyl cysteine (NAC). Minimize toxin exposure."),
			},
		},
		{
			RSID:      "rs7501331",
			Gene:      "BCMO1",
			Condition: "Beta-Carotene to Vitamin A Conversion",
			Category:  domain.CategoryVitamins,
			Source:    "PMID: 19103647; SNPedia rs7501331",
			Interpretations: map[string]domain.InterpretationRule{
				"CC": rule(domain.RISK_LOW, "Normal beta-carotene conversion to vitamin A",
					"You can effectively convert plant sources (carrots, sweet potatoes) to active vitamin A."),
				"CT": rule(domain.RISK_MODERATE, "Reduced beta-carotene conversion (~32% less)",
					"Include some preformed vitamin A sources (eggs, dairy, liver) alongside plant sources."),
				"TT": rule(domain.RISK_HIGH, "Significantly reduced conversion (~69% less)",
					"Relying on beta-carotene alone may lead to vitamin A insufficiency. Include retinol sources: eggs, dairy, fish. Vegans may need retinol supplements."),
			},
		},
		{
			RSID:      "rs7946",
			Gene:      "PEMT",
			Condition: "Choline Requirements",
			Category:  domain.CategoryVitamins,
			Source:    "PMID: 17630398; SNPedia rs7946",
			Interpretations: map[string]domain.InterpretationRule{
				"CC": rule(domain.RISK_LOW, "Normal endogenous choline production",
					"Standard choline intake is sufficient. Include eggs, liver, or soy regularly."),
				"CT": rule(domain.RISK_MODERATE, "Reduced ability to produce choline internally",
					"May need more dietary choline. Best sources: eggs (highest), liver, fish, poultry."),
				"TT": rule(domain.RISK_HIGH, "Significantly reduced choline synthesis - higher dietary needs",
					"Prioritize choline-rich foods daily: eggs (2/day ideal), liver, fish. Especially important during pregnancy. Consider choline supplement if not eating eggs."),
				"GG": rule(domain.RISK_LOW, "Normal choline (minus strand)", "Standard intake sufficient."),
				"AG": rule(domain.RISK_MODERATE, "Reduced choline production (minus strand)", "Include eggs regularly."),
				"AA": rule(domain.RISK_HIGH, "Higher choline needs (minus strand)", "Prioritize eggs and liver."),
			},
		},
	}
}
