package reaction

import "reactcore/pkg/nuclide"

// Reaction categories. Each entry is registered in declaration order and is
// reachable through Categories, LookupCategory and CategoryByName.
var (
	N2ND       = define("N2ND", TypusN2ND, Neutron, Neutron, Deutron)
	N2N        = define("N2N", TypusN2N, Neutron, Neutron)
	N3N        = define("N3N", TypusN3N, Neutron, Neutron, Neutron)
	Fission    = define("Fission", TypusNFission, Neutron, Photon)
	NNAlpha    = define("NNAlpha", TypusNNAlpha, Neutron, Alpha)
	NN3Alpha   = define("NN3Alpha", TypusNN3Alpha, Neutron, Alpha, Alpha, Alpha)
	N2NAlpha   = define("N2NAlpha", TypusN2NAlpha, Neutron, Neutron, Alpha)
	N3NAlpha   = define("N3NAlpha", TypusN3NAlpha, Neutron, Neutron, Neutron, Alpha)
	NNP        = define("NNP", TypusNNP, Neutron, Proton)
	NN2Alpha   = define("NN2Alpha", TypusNN2Alpha, Neutron, Alpha, Alpha)
	N2N2Alpha  = define("N2N2Alpha", TypusN2N2Alpha, Neutron, Neutron, Alpha, Alpha)
	NND        = define("NND", TypusNND, Neutron, Deutron)
	NNT        = define("NNT", TypusNNT, Neutron, Triton)
	NNHe3      = define("NNHe3", TypusNNHe3, Neutron, He3)
	NND2Alpha  = define("NND2Alpha", TypusNND2Alpha, Neutron, Deutron, Alpha, Alpha)
	NNT2Alpha  = define("NNT2Alpha", TypusNNT2Alpha, Neutron, Triton, Alpha, Alpha)
	N4N        = define("N4N", TypusN4N, Neutron, Neutron, Neutron, Neutron)
	N2NP       = define("N2NP", TypusN2NP, Neutron, Neutron, Proton)
	N3NP       = define("N3NP", TypusN3NP, Neutron, Neutron, Neutron, Proton)
	NN2P       = define("NN2P", TypusNN2P, Neutron, Proton, Proton)
	NNPAlpha   = define("NNPAlpha", TypusNNPAlpha, Neutron, Proton, Alpha)
	NGamma     = define("NGamma", TypusNGamma, Photon)
	NP         = define("NP", TypusNP, Proton)
	ND         = define("ND", TypusND, Deutron)
	NT         = define("NT", TypusNT, Triton)
	NHe3       = define("NHe3", TypusNHe3, He3)
	NAlpha     = define("NAlpha", TypusNAlpha, Alpha)
	N2Alpha    = define("N2Alpha", TypusN2Alpha, Alpha, Alpha)
	N3Alpha    = define("N3Alpha", TypusN3Alpha, Alpha, Alpha, Alpha)
	N2P        = define("N2P", TypusN2P, Proton, Proton)
	NPAlpha    = define("NPAlpha", TypusNPAlpha, Proton, Alpha)
	NT2Alpha   = define("NT2Alpha", TypusNT2Alpha, Triton, Alpha, Alpha)
	ND2Alpha   = define("ND2Alpha", TypusND2Alpha, Deutron, Alpha, Alpha)
	NPD        = define("NPD", TypusNPD, Proton, Deutron)
	NPT        = define("NPT", TypusNPT, Proton, Triton)
	NDAlpha    = define("NDAlpha", TypusNDAlpha, Deutron, Alpha)
	N5N        = define("N5N", TypusN5N, Neutron, Neutron, Neutron, Neutron, Neutron)
	N6N        = define("N6N", TypusN6N, Neutron, Neutron, Neutron, Neutron, Neutron, Neutron)
	N2NT       = define("N2NT", TypusN2NT, Neutron, Neutron, Triton)
	N4NP       = define("N4NP", TypusN4NP, Neutron, Neutron, Neutron, Neutron, Proton)
	N3ND       = define("N3ND", TypusN3ND, Neutron, Neutron, Neutron, Deutron)
	NNDAlpha   = define("NNDAlpha", TypusNNDAlpha, Neutron, Deutron, Alpha)
	N2NPAlpha  = define("N2NPAlpha", TypusN2NPAlpha, Neutron, Neutron, Proton, Alpha)
	N7N        = define("N7N", TypusN7N, Neutron, Neutron, Neutron, Neutron, Neutron, Neutron, Neutron)
	N8N        = define("N8N", TypusN8N, Neutron, Neutron, Neutron, Neutron, Neutron, Neutron, Neutron, Neutron)
	N5NP       = define("N5NP", TypusN5NP, Neutron, Neutron, Neutron, Neutron, Neutron, Proton)
	N6NP       = define("N6NP", TypusN6NP, Neutron, Neutron, Neutron, Neutron, Neutron, Neutron, Proton)
	N7NP       = define("N7NP", TypusN7NP, Neutron, Neutron, Neutron, Neutron, Neutron, Neutron, Neutron, Proton)
	N4NAlpha   = define("N4NAlpha", TypusN4NAlpha, Neutron, Neutron, Neutron, Neutron, Alpha)
	N5NAlpha   = define("N5NAlpha", TypusN5NAlpha, Neutron, Neutron, Neutron, Neutron, Neutron, Alpha)
	N6NAlpha   = define("N6NAlpha", TypusN6NAlpha, Neutron, Neutron, Neutron, Neutron, Neutron, Neutron, Alpha)
	N7NAlpha   = define("N7NAlpha", TypusN7NAlpha, Neutron, Neutron, Neutron, Neutron, Neutron, Neutron, Neutron, Alpha)
	N4ND       = define("N4ND", TypusN4ND, Neutron, Neutron, Neutron, Neutron, Deutron)
	N5ND       = define("N5ND", TypusN5ND, Neutron, Neutron, Neutron, Neutron, Neutron, Deutron)
	N6ND       = define("N6ND", TypusN6ND, Neutron, Neutron, Neutron, Neutron, Neutron, Neutron, Deutron)
	N3NT       = define("N3NT", TypusN3NT, Neutron, Neutron, Neutron, Triton)
	N4NT       = define("N4NT", TypusN4NT, Neutron, Neutron, Neutron, Neutron, Triton)
	N5NT       = define("N5NT", TypusN5NT, Neutron, Neutron, Neutron, Neutron, Neutron, Triton)
	N6NT       = define("N6NT", TypusN6NT, Neutron, Neutron, Neutron, Neutron, Neutron, Neutron, Triton)
	N2NHe3     = define("N2NHe3", TypusN2NHe3, Neutron, Neutron, He3)
	N3NHe3     = define("N3NHe3", TypusN3NHe3, Neutron, Neutron, Neutron, He3)
	N4NHe3     = define("N4NHe3", TypusN4NHe3, Neutron, Neutron, Neutron, Neutron, He3)
	N3N2P      = define("N3N2P", TypusN3N2P, Neutron, Neutron, Neutron, Proton, Proton)
	N3N2Alpha  = define("N3N2Alpha", TypusN3N2Alpha, Neutron, Neutron, Neutron, Alpha, Alpha)
	N3NPAlpha  = define("N3NPAlpha", TypusN3NPAlpha, Neutron, Neutron, Neutron, Proton, Alpha)
	NDT        = define("NDT", TypusNDT, Deutron, Triton)
	NNPD       = define("NNPD", TypusNNPD, Neutron, Proton, Deutron)
	NNPT       = define("NNPT", TypusNNPT, Neutron, Proton, Triton)
	NNDT       = define("NNDT", TypusNNDT, Neutron, Deutron, Triton)
	NNPHe3     = define("NNPHe3", TypusNNPHe3, Neutron, Proton, He3)
	NNDHe3     = define("NNDHe3", TypusNNDHe3, Neutron, Deutron, He3)
	NNTHe3     = define("NNTHe3", TypusNNTHe3, Neutron, Triton, He3)
	NNTAlpha   = define("NNTAlpha", TypusNNTAlpha, Neutron, Triton, Alpha)
	N2N2P      = define("N2N2P", TypusN2N2P, Neutron, Neutron, Proton, Proton)
	NPHe3      = define("NPHe3", TypusNPHe3, Proton, He3)
	NDHe3      = define("NDHe3", TypusNDHe3, Deutron, He3)
	NHe3Alpha  = define("NHe3Alpha", TypusNHe3Alpha, He3, Alpha)
	N4N2P      = define("N4N2P", TypusN4N2P, Neutron, Neutron, Neutron, Neutron, Proton, Proton)
	N4N2Alpha  = define("N4N2Alpha", TypusN4N2Alpha, Neutron, Neutron, Neutron, Neutron, Alpha, Alpha)
	N4NPAlpha  = define("N4NPAlpha", TypusN4NPAlpha, Neutron, Neutron, Neutron, Neutron, Proton, Alpha)
	N3P        = define("N3P", TypusN3P, Proton, Proton, Proton)
	NN3P       = define("NN3P", TypusNN3P, Neutron, Proton, Proton, Proton)
	N3N2PAlpha = define("N3N2PAlpha", TypusN3N2PAlpha, Neutron, Neutron, Neutron, Proton, Proton, Alpha)
	N5N2P      = define("N5N2P", TypusN5N2P, Neutron, Neutron, Neutron, Neutron, Neutron, Proton, Proton)
	NAnything  = define("NAnything", TypusNAnything, Neutron)
	NInelastic = define("NInelastic", TypusNInelastic, Neutron, Photon)
	NHeating   = define("NHeating", TypusNHeating, Neutron)
)

// Production categories.
var (
	NNTot   = defineProduction("NNTot", nuclide.New(0, 1, 0), ProdTypusNNTot)
	NPtot   = defineProduction("NPtot", nuclide.New(1, 1, 0), ProdTypusNPtot)
	NDtot   = defineProduction("NDtot", nuclide.New(1, 2, 0), ProdTypusNDtot)
	NTtot   = defineProduction("NTtot", nuclide.New(1, 3, 0), ProdTypusNTtot)
	NHe3tot = defineProduction("NHe3tot", nuclide.New(2, 3, 0), ProdTypusNHe3tot)
)
