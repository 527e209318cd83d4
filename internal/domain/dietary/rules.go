// Package dietary flags food and beverage interactions for a medication list.
// Rules are a curated keyword table; a drug matches when the rule keyword is a
// substring of its lowered name, so "Atorvastatin 20 MG Oral Tablet" still
// hits the atorvastatin rule.
package dietary

import (
	"sort"
	"strings"
)

type rule struct {
	Food          string
	Severity      string
	Color         string
	DescriptionEN string
	DescriptionAR string
}

// Warning is one food interaction for one drug in the checked list.
type Warning struct {
	Drug          string `json:"drug"`
	Food          string `json:"food"`
	Severity      string `json:"severity"`
	Color         string `json:"color"`
	DescriptionEN string `json:"description_en"`
	DescriptionAR string `json:"description_ar"`
}

var foodRules = map[string]rule{
	"atorvastatin": {
		Food:          "Grapefruit Juice / عصير الجريب فروت",
		Severity:      "Major",
		Color:         "red",
		DescriptionEN: "Avoid large amounts of grapefruit juice. It increases the level of the drug in your blood, raising the risk of side effects (muscle pain).",
		DescriptionAR: "تجنب كميات كبيرة من عصير الجريب فروت. لأنه يرفع مستوى الدواء في الدم مما يزيد خطر الأعراض الجانبية (ألم العضلات).",
	},
	"simvastatin": {
		Food:          "Grapefruit Juice / عصير الجريب فروت",
		Severity:      "Major",
		Color:         "red",
		DescriptionEN: "Do not drink grapefruit juice. It significantly increases drug levels and risk of muscle toxicity.",
		DescriptionAR: "لا تشرب عصير الجريب فروت. لأنه يزيد بشكل كبير من مستويات الدواء وخطر تسمم العضلات.",
	},
	"warfarin": {
		Food:          "Vitamin K (Leafy Greens) / خضروات ورقية (فيتامين ك)",
		Severity:      "Moderate",
		Color:         "orange",
		DescriptionEN: "Maintain a consistent intake of Vitamin K (spinach, kale). Sudden changes can alter the drug's effectiveness (INR).",
		DescriptionAR: "حافظ على كمية ثابتة من فيتامين 'ك' (السبانخ، الكرنب). التغيير المفاجئ قد يقلل فاعلية الدواء (السيولة).",
	},
	"ciprofloxacin": {
		Food:          "Dairy (Calcium) / منتجات الألبان (كالسيوم)",
		Severity:      "Moderate",
		Color:         "yellow",
		DescriptionEN: "Take 2 hours before or 6 hours after dairy products. Calcium binds to the drug and prevents absorption.",
		DescriptionAR: "تناوله قبل منتجات الألبان بساعتين أو بعدها بـ 6 ساعات. الكالسيوم يمنع امتصاص الدواء.",
	},
	"metronidazole": {
		Food:          "Alcohol / الكحول",
		Severity:      "Contraindicated",
		Color:         "red",
		DescriptionEN: "Do NOT drink alcohol. Causes severe nausea, vomiting, and cramps (Disulfiram-like reaction).",
		DescriptionAR: "ممنوع شرب الكحول نهائياً. يسبب غثيان وقيء وتشنجات شديدة.",
	},
	"digoxin": {
		Food:          "Fiber / الألياف",
		Severity:      "Minor",
		Color:         "yellow",
		DescriptionEN: "Take 1 hour before or 2 hours after high-fiber meals (e.g., bran). Fiber decreases absorption.",
		DescriptionAR: "تناوله قبل الوجبات الغنية بالألياف بساعة أو بعدها بساعتين. الألياف تقلل الامتصاص.",
	},
	"spironolactone": {
		Food:          "High Potassium / أطعمة غنية بالبوتاسيوم",
		Severity:      "Moderate",
		Color:         "orange",
		DescriptionEN: "Avoid excessive potassium (bananas, salt substitutes). Risk of hyperkalemia (high blood potassium).",
		DescriptionAR: "تجنب الإفراط في البوتاسيوم (الموز، بدائل الملح). خطر ارتفاع البوتاسيوم في الدم.",
	},
}

// ruleKeys is the deterministic iteration order for the rule table.
var ruleKeys = func() []string {
	keys := make([]string, 0, len(foodRules))
	for k := range foodRules {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}()

// Check returns a warning per (drug, matching rule) in input order.
func Check(drugNames []string) []Warning {
	warnings := []Warning{}
	for _, name := range drugNames {
		lowered := strings.ToLower(name)
		for _, key := range ruleKeys {
			if !strings.Contains(lowered, key) {
				continue
			}
			r := foodRules[key]
			warnings = append(warnings, Warning{
				Drug:          name,
				Food:          r.Food,
				Severity:      r.Severity,
				Color:         r.Color,
				DescriptionEN: r.DescriptionEN,
				DescriptionAR: r.DescriptionAR,
			})
		}
	}
	return warnings
}
