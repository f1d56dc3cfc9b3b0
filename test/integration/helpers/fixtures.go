//go:build integration

package helpers

import "context"

// genomicFixture is a small graph shaped like the built-in genomic model.
const genomicFixture = `
CREATE (dm:Organism {name: 'Drosophila melanogaster', shortName: 'D. melanogaster', taxonId: 7227})
CREATE (hs:Organism {name: 'Homo sapiens', shortName: 'H. sapiens', taxonId: 9606})
CREATE (chr:Chromosome:SequenceFeature:BioEntity {primaryIdentifier: '2R', length: 25286936})
CREATE (eve:Gene:SequenceFeature:BioEntity {primaryIdentifier: 'FBgn0000606', symbol: 'eve', length: 1521})
CREATE (ftz:Gene:SequenceFeature:BioEntity {primaryIdentifier: 'FBgn0001077', symbol: 'ftz', length: 1900})
CREATE (hox:Gene:SequenceFeature:BioEntity {primaryIdentifier: 'ENSG00000105991', symbol: 'HOXA1', length: 3063})
CREATE (p:Protein:BioEntity {primaryAccession: 'P06602', molecularWeight: 39985})
CREATE (eve)-[:ORGANISM]->(dm)
CREATE (ftz)-[:ORGANISM]->(dm)
CREATE (hox)-[:ORGANISM]->(hs)
CREATE (eve)-[:ENCODES]->(p)
CREATE (eve)-[:LOCATED_ON {start: 9979319, end: 9980839, strand: 1}]->(chr)
CREATE (ftz)-[:LOCATED_ON {start: 6632432, end: 6634332, strand: -1}]->(chr)
`

// SeedGenomic loads the genomic fixture graph.
func (n *Neo4jContainer) SeedGenomic(ctx context.Context) error {
	return n.Write(ctx, genomicFixture, nil)
}
