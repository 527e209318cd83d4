package drug

// defaultArabicNames maps common Arabic drug spellings (brand and generic,
// with frequent orthographic variants) to canonical English names. Curated
// with clinical pharmacy input for the Middle East market.
var defaultArabicNames = map[string]string{
	// pain relievers
	"اسبرين": "Aspirin", "أسبرين": "Aspirin", "اسبيرين": "Aspirin",
	"بنادول": "Paracetamol", "بانادول": "Panadol", "باراسيتامول": "Paracetamol",
	"ادول": "Paracetamol", "أدول": "Paracetamol",
	"بروفين": "Ibuprofen", "ايبوبروفين": "Ibuprofen", "إيبوبروفين": "Ibuprofen",
	"فولتارين": "Diclofenac", "ديكلوفيناك": "Diclofenac", "كتافلام": "Diclofenac",
	"ترامادول": "Tramadol", "ترامال": "Tramadol",
	"نابروكسين": "Naproxen", "نوبين": "Naproxen",
	"سيليبريكس": "Celecoxib", "سيليكوكسيب": "Celecoxib",

	// antibiotics
	"اموكسيسيلين": "Amoxicillin", "أموكسيسيلين": "Amoxicillin", "اموكسل": "Amoxicillin",
	"اوجمنتين": "Augmentin", "اوجمنتيت": "Augmentin",
	"سيبروفلوكساسين": "Ciprofloxacin", "سيبرو": "Ciprofloxacin",
	"فلاجيل": "Metronidazole", "ميترونيدازول": "Metronidazole",
	"كلاريثرومايسين": "Clarithromycin", "كلاسيد": "Clarithromycin",
	"ازيثروميسين": "Azithromycin", "زيثروماكس": "Azithromycin", "زيماكس": "Azithromycin",
	"سيفترياكسون": "Ceftriaxone", "روسيفين": "Ceftriaxone",

	// heart and blood pressure
	"وارفارين": "Warfarin", "كومادين": "Warfarin", "ماريفان": "Warfarin",
	"بلافيكس": "Clopidogrel", "كلوبيدوجريل": "Clopidogrel",
	"كونكور": "Bisoprolol", "بيزوبرولول": "Bisoprolol",
	"اتينولول": "Atenolol", "تينورمين": "Atenolol",
	"اميلوديبين": "Amlodipine", "نورفاسك": "Amlodipine",
	"انالابريل": "Enalapril", "ريناتك": "Enalapril",
	"ليزينوبريل": "Lisinopril", "زيستريل": "Lisinopril",
	"لوسارتان": "Losartan", "كوزار": "Losartan",
	"فالسارتان": "Valsartan", "تارج": "Valsartan",
	"ديجوكسين": "Digoxin", "لانوكسين": "Digoxin",

	// cholesterol
	"ليبيتور": "Atorvastatin", "اتور": "Atorvastatin", "اتورفاستاتين": "Atorvastatin",
	"كرستور": "Rosuvastatin", "روزوفاستاتين": "Rosuvastatin",
	"زوكور": "Simvastatin", "سيمفاستاتين": "Simvastatin",

	// diabetes
	"ميتفورمين": "Metformin", "جلوكوفاج": "Metformin", "كلوفاج": "Metformin",
	"جليمبريد": "Glimepiride", "اماريل": "Glimepiride",
	"جليكلازيد": "Gliclazide", "دياميكرون": "Gliclazide",
	"انسولين": "Insulin", "لانتوس": "Insulin glargine",
	"جارديانس": "Empagliflozin", "امباغليفلوزين": "Empagliflozin",

	// stomach
	"اوميبرازول": "Omeprazole", "لوسك": "Omeprazole", "بريلوسيك": "Omeprazole",
	"نيكسيوم": "Esomeprazole", "ايزوميبرازول": "Esomeprazole",
	"رانيتيدين": "Ranitidine", "زانتاك": "Ranitidine",
	"بانتوبرازول": "Pantoprazole", "بروتونيكس": "Pantoprazole",
	"موتيليوم": "Domperidone", "دومبيريدون": "Domperidone",

	// thyroid
	"التروكسين": "Levothyroxine", "ليفوثيروكسين": "Levothyroxine", "يوثيروكس": "Levothyroxine",

	// mental health
	"سبرالكس": "Escitalopram", "ليكسابرو": "Escitalopram",
	"زولوفت": "Sertraline", "سيرترالين": "Sertraline",
	"بروزاك": "Fluoxetine", "فلوكستين": "Fluoxetine",
	"زاناكس": "Alprazolam", "الفابرازولام": "Alprazolam",
	"فاليوم": "Diazepam", "ديازيبام": "Diazepam",
	"ريسبيريدون": "Risperidone", "ريسبردال": "Risperidone",

	// allergies
	"كلاريتين": "Loratadine", "لوراتادين": "Loratadine",
	"زيرتك": "Cetirizine", "سيتريزين": "Cetirizine",
	"تلفاست": "Fexofenadine", "اليجرا": "Fexofenadine",

	// respiratory
	"فنتولين": "Salbutamol", "سالبوتامول": "Albuterol", "فينتولين": "Salbutamol",
	"سيريتايد": "Fluticasone-salmeterol", "سيمبيكورت": "Budesonide-formoterol",
	"سينجولير": "Montelukast", "مونتيلوكاست": "Montelukast",

	// category words, kept so category queries still resolve to something
	"مضاد حيوي": "Antibiotic", "مسكن": "Painkiller", "خافض حرارة": "Antipyretic",
}

// defaultSynonyms groups generic names with their common brand names and
// alternate spellings, for synonym-expanded search.
var defaultSynonyms = map[string][]string{
	"aspirin":       {"acetylsalicylic acid", "asa", "bayer", "ecotrin"},
	"paracetamol":   {"acetaminophen", "tylenol", "panadol", "adol"},
	"ibuprofen":     {"advil", "motrin", "brufen", "nurofen"},
	"diclofenac":    {"voltaren", "cataflam"},
	"amoxicillin":   {"amoxil", "trimox"},
	"metformin":     {"glucophage", "fortamet"},
	"omeprazole":    {"prilosec", "losec"},
	"atorvastatin":  {"lipitor"},
	"lisinopril":    {"prinivil", "zestril"},
	"amlodipine":    {"norvasc"},
	"metoprolol":    {"lopressor", "toprol"},
	"losartan":      {"cozaar"},
	"simvastatin":   {"zocor"},
	"levothyroxine": {"synthroid", "levoxyl", "eltroxin"},
	"azithromycin":  {"zithromax", "z-pack"},
	"ciprofloxacin": {"cipro", "ciproxin"},
	"warfarin":      {"coumadin", "jantoven"},
	"clopidogrel":   {"plavix"},
	"insulin":       {"lantus", "humalog", "novolog"},
	"salbutamol":    {"albuterol", "ventolin", "proair"},
}

// DefaultTransliterationTable returns the built-in Arabic name table.
func DefaultTransliterationTable() *TransliterationTable {
	return NewTransliterationTable(defaultArabicNames)
}

// DefaultSynonymTable returns the built-in brand/generic synonym table.
func DefaultSynonymTable() *SynonymTable {
	return NewSynonymTable(defaultSynonyms)
}
