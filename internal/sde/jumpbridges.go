package sde

// Jumpbridge is one player-built bridge between two systems, named as in the SDE.
type Jumpbridge struct {
	A, B     string
	Alliance string
}

// Jumpbridges is the built-in bridge network. Pairs listed twice in either
// direction collapse to one link when loaded.
var Jumpbridges = []Jumpbridge{
	// Cache
	{"C-6YHJ", "P7-45V", "FNT"},
	{"I6-SYN", "YE1-9S", "FNT"},
	{"JZ-B5Y", "LJ-RJK", "FNT"},
	{"M-MCP8", "PKN-NJ", "FNT"},
	{"M53-1V", "VK-A5G", "FNT"},
	{"W2T-TR", "8-WYQZ", "CONDI"},

	// Catch
	{"36N-HZ", "F4R2-Q", "5IGMA"},
	{"4-07MU", "EX6-AO", "5IGMA"},
	{"E3-SDZ", "GE-8JV", "5IGMA"},
	{"HY-RWO", "U-QVWD", "5IGMA"},
	{"I-8D0G", "MB-NKE", "5IGMA"},
	{"KH0Z-0", "X4-WL0", "5IGMA"},
	{"Q-S7ZD", "V-3YG7", "5IGMA"},
	{"QETZ-W", "SNFV-I", "5IGMA"},
	{"QSM-LM", "SV5-8N", "5IGMA"},

	// Detorid
	{"3-3EZB", "L8-WNE", "CONDI"},
	{"3-LJW3", "M-ZJWJ", "CONDI"},
	{"4NDT-W", "O3-4MN", "CONDI"},
	{"77S8-E", "U-MFTL", "CONDI"},
	{"A-7XFN", "C5-SUU", "CONDI"},
	{"DG-8VJ", "V-4DBR", "CONDI"},
	{"DX-DFJ", "QI-S9W", "CONDI"},
	{"E-ACV6", "SAI-T9", "CONDI"},
	{"FIDY-8", "M-XUZZ", "CONDI"},
	{"G3D-ZT", "U69-YC", "CONDI"},
	{"IAS-I5", "Y-FZ5N", "CONDI"},
	{"KZ9T-C", "3-0FYP", "CONDI"},

	// Esoteria
	{"02V-BK", "X-7BIX", "IGC"},
	{"A1-AUH", "O-MCZR", "D.C"},
	{"DIBH-Q", "MS2-V8", "IGC"},
	{"J-RVGD", "33-JRO", "D.C"},
	{"KSM-1T", "0SUF-3", "D.C"},
	{"R-ARKN", "WT-2J9", "IGC"},

	// Feythabolis
	{"0OYZ-G", "D4-2XN", "IGC"},
	{"23M-PX", "BLC-X0", "SHADO"},
	{"3-YX2D", "IRE-98", "FNT"},
	{"3L-Y9M", "5ELE-A", "SHADO"},
	{"BJ-ZFD", "M2GJ-X", "SHADO"},
	{"CFLF-P", "TR07-S", "FNT"},
	{"D6SK-L", "JO-32L", "IGC"},
	{"K-J50B", "Y-YGMW", "BRAVE"},

	// Immensea
	{"08-N7Q", "Y19P-1", "CONDI"},
	{"6-I162", "FRTC-5", "CONDI"},
	{"7-ZT1Y", "ZJA-6U", "VAPOR"},
	{"9-XN3F", "B9E-H6", "CONDI"},
	{"DW-N2S", "U6K-RG", "CONDI"},
	{"EA-HSA", "RF6T-8", "VAPOR"},
	{"GM-0K7", "PH-NFR", "VAPOR"},
	{"JDAS-0", "Y-N4EF", "CONDI"},
	{"L-5JCJ", "U-HVIX", "CONDI"},
	{"M-ZJWJ", "3-LJW3", "CONDI"},
	{"O7-VJ5", "T2-V8F", "CONDI"},
	{"QE-E1D", "XVV-21", "CONDI"},
	{"QI-S9W", "DX-DFJ", "CONDI"},
	{"Y-FZ5N", "IAS-I5", "CONDI"},

	// Impass
	{"9I-SRF", "N-CREL", "FNT"},
	{"IRE-98", "3-YX2D", "FNT"},
	{"TM-0P2", "4-P4FE", "BRAVE"},

	// Insmother
	{"1TG7-W", "RERZ-L", "CONDI"},
	{"3-0FYP", "KZ9T-C", "CONDI"},
	{"4DS-OI", "G-EURJ", "CONDI"},
	{"4M-QXK", "O-9G5Y", "CONDI"},
	{"5IH-GL", "74L2-U", "CONDI"},
	{"7-JT09", "X0-6LH", "CONDI"},
	{"74L2-U", "5IH-GL", ".S0B."},
	{"78-0R6", "R4N-LD", "CONDI"},
	{"8-WYQZ", "W2T-TR", "CONDI"},
	{"88A-RA", "GM-50Y", "CONDI"},
	{"8G-2FP", "LP1M-Q", "CONDI"},
	{"A-TJ0G", "C1G-XC", "CONDI"},
	{"C-J6MT", "EFM-C4", "CONDI"},
	{"D-P1EH", "GB-6X5", ".S0B."},
	{"MJ-LGH", "X2-ZA5", "CONDI"},
	{"MSG-BZ", "7K-NSE", "CONDI"},
	{"YPW-M4", "LBC-AW", "CONDI"},

	// Paragon Soul
	{"0SUF-3", "KSM-1T", "D.C"},
	{"33-JRO", "J-RVGD", "D.C"},
	{"3PPT-9", "MP5-KR", "D.C"},
	{"8Q-UYU", "O-97ZG", "D.C"},
	{"G-M4GK", "O4T-Z5", "D.C"},
	{"JI-K5H", "LG-WA9", "D.C"},
	{"O-MCZR", "A1-AUH", "D.C"},

	// Period Basis
	{"PA-VE3", "UR-E46", "D.C"},
	{"TCAG-3", "TN25-J", "D.C"},
	{"TPAR-G", "Y-CWQY", "D.C"},
	{"VYO-68", "XZ-SKZ", "D.C"},

	// Scalding Pass
	{"4-43BW", "5E-CMA", "CONDI"},
	{"8CN-CH", "SD4A-2", "CONDI"},
	{"F2-NXA", "N3-JBX", "CONDI"},
	{"HJ-BCH", "V-F6DQ", "CONDI"},
	{"LBC-AW", "YPW-M4", "CONDI"},
	{"RNM-Y6", "SG-75T", "CONDI"},
	{"U6K-RG", "DW-N2S", "CONDI"},
	{"X2-ZA5", "MJ-LGH", "CONDI"},

	// Tenerifis
	{"0VK-43", "Y-EQ0C", "BRAVE"},
	{"3L3N-X", "ZMV9-A", "BRAVE"},
	{"4-P4FE", "TM-0P2", "BRAVE"},
	{"46DP-O", "XGH-SH", "CONDI"},
	{"DT-PXH", "PDF-3Z", "BRAVE"},
	{"IL-YTR", "UALX-3", "BRAVE"},
	{"JI1-SY", "Y-ORBJ", "BRAVE"},
	{"KW-OAM", "TY2X-C", "BRAVE"},
	{"Q0G-L8", "QLU-P0", "BRAVE"},

	// Wicked Creek
	{"4F89-U", "GRHS-B", "CONDI"},
	{"5E-CMA", "4-43BW", "CONDI"},
	{"5H-SM2", "UM-SCG", "CONDI"},
	{"7K-NSE", "MSG-BZ", "CONDI"},
	{"GM-50Y", "88A-RA", "CONDI"},
	{"J-RXYN", "MN-Q26", "CONDI"},
	{"LP1M-Q", "8G-2FP", "CONDI"},
	{"R4N-LD", "78-0R6", "CONDI"},
	{"U-HVIX", "L-5JCJ", "CONDI"},
}
