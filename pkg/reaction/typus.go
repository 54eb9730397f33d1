package reaction

// Typus is the tag string naming a reaction category.
type Typus string

// Reaction category tags.
const (
	TypusN2ND       Typus = "(n,2nd)"
	TypusN2N        Typus = "(n,2n)"
	TypusN3N        Typus = "(n,3n)"
	TypusNFission   Typus = "(n,fission)"
	TypusNNAlpha    Typus = "(n,na)"
	TypusNN3Alpha   Typus = "(n,n3a)"
	TypusN2NAlpha   Typus = "(n,2na)"
	TypusN3NAlpha   Typus = "(n,3na)"
	TypusNNP        Typus = "(n,np)"
	TypusNN2Alpha   Typus = "(n,n2a)"
	TypusN2N2Alpha  Typus = "(n,2n2a)"
	TypusNND        Typus = "(n,nd)"
	TypusNNT        Typus = "(n,nt)"
	TypusNNHe3      Typus = "(n,nHe3)"
	TypusNND2Alpha  Typus = "(n,nd2a)"
	TypusNNT2Alpha  Typus = "(n,nt2a)"
	TypusN4N        Typus = "(n,4n)"
	TypusN2NP       Typus = "(n,2np)"
	TypusN3NP       Typus = "(n,3np)"
	TypusNN2P       Typus = "(n,n2p)"
	TypusNNPAlpha   Typus = "(n,npa)"
	TypusNGamma     Typus = `(n,\gamma)`
	TypusNP         Typus = "(n,p)"
	TypusND         Typus = "(n,d)"
	TypusNT         Typus = "(n,t)"
	TypusNHe3       Typus = "(n,He3)"
	TypusNAlpha     Typus = "(n,a)"
	TypusN2Alpha    Typus = "(n,2a)"
	TypusN3Alpha    Typus = "(n,3a)"
	TypusN2P        Typus = "(n,2p)"
	TypusNPAlpha    Typus = "(n,pa)"
	TypusNT2Alpha   Typus = "(n,t2a)"
	TypusND2Alpha   Typus = "(n,d2a)"
	TypusNPD        Typus = "(n,pd)"
	TypusNPT        Typus = "(n,pt)"
	TypusNDAlpha    Typus = "(n,da)"
	TypusN5N        Typus = "(n,5n)"
	TypusN6N        Typus = "(n,6n)"
	TypusN2NT       Typus = "(n,2nt)"
	TypusN4NP       Typus = "(n,4np)"
	TypusN3ND       Typus = "(n,3nd)"
	TypusNNDAlpha   Typus = "(n,nda)"
	TypusN2NPAlpha  Typus = "(n,2npa)"
	TypusN7N        Typus = "(n,7n)"
	TypusN8N        Typus = "(n,8n)"
	TypusN5NP       Typus = "(n,5np)"
	TypusN6NP       Typus = "(n,6np)"
	TypusN7NP       Typus = "(n,7np)"
	TypusN4NAlpha   Typus = "(n,4na)"
	TypusN5NAlpha   Typus = "(n,5na)"
	TypusN6NAlpha   Typus = "(n,6na)"
	TypusN7NAlpha   Typus = "(n,7na)"
	TypusN4ND       Typus = "(n,4nd)"
	TypusN5ND       Typus = "(n,5nd)"
	TypusN6ND       Typus = "(n,6nd)"
	TypusN3NT       Typus = "(n,3nt)"
	TypusN4NT       Typus = "(n,4nt)"
	TypusN5NT       Typus = "(n,5nt)"
	TypusN6NT       Typus = "(n,6nt)"
	TypusN2NHe3     Typus = "(n,2nHe3)"
	TypusN3NHe3     Typus = "(n,3nHe3)"
	TypusN4NHe3     Typus = "(n,4nHe3)"
	TypusN3N2P      Typus = "(n,3n2p)"
	TypusN3N2Alpha  Typus = "(n,3n2a)"
	TypusN3NPAlpha  Typus = "(n,3npa)"
	TypusNDT        Typus = "(n,dt)"
	TypusNNPD       Typus = "(n,npd)"
	TypusNNPT       Typus = "(n,npt)"
	TypusNNDT       Typus = "(n,ndt)"
	TypusNNPHe3     Typus = "(n,npHe3)"
	TypusNNDHe3     Typus = "(n,ndHe3)"
	TypusNNTHe3     Typus = "(n,ntHe3)"
	TypusNNTAlpha   Typus = "(n,nta)"
	TypusN2N2P      Typus = "(n,2n2p)"
	TypusNPHe3      Typus = "(n,pHe3)"
	TypusNDHe3      Typus = "(n,dHe3)"
	TypusNHe3Alpha  Typus = "(n,He3a)"
	TypusN4N2P      Typus = "(n,4n2p)"
	TypusN4N2Alpha  Typus = "(n,4n2a)"
	TypusN4NPAlpha  Typus = "(n,4npa)"
	TypusN3P        Typus = "(n,3p)"
	TypusNN3P       Typus = "(n,n3p)"
	TypusN3N2PAlpha Typus = "(n,3n2pa)"
	TypusN5N2P      Typus = "(n,5n2p)"
	TypusNAnything  Typus = "(n,anything)"
	TypusNInelastic Typus = "(n,n')"
	TypusNHeating   Typus = "(n,heating)"
)

// ProdTypus is the tag string naming a production category.
type ProdTypus string

// Production category tags.
const (
	ProdTypusNNTot   ProdTypus = "(n,xn)"
	ProdTypusNPtot   ProdTypus = "(n,xp)"
	ProdTypusNDtot   ProdTypus = "(n,xd)"
	ProdTypusNTtot   ProdTypus = "(n,xt)"
	ProdTypusNHe3tot ProdTypus = "(n,xHe3)"
)

func (t Typus) String() string { return string(t) }

func (t ProdTypus) String() string { return string(t) }
