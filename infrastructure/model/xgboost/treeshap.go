package xgboost

// pathElement é um elemento do caminho de features únicas do TreeSHAP
// (Lundberg et al., "Consistent Individualized Feature Attribution for Tree Ensembles").
type pathElement struct {
	feature int
	zero    float64 // fração de cover que passa pelo caminho quando a feature está ausente
	one     float64 // 1 se x segue o caminho, 0 caso contrário
	weight  float64
}

func (t *tree) shap(x []float64, phi []float64) {
	t.recurse(0, x, phi, nil, 1, 1, -1)
}

func (t *tree) recurse(i int, x []float64, phi []float64, parent []pathElement, zero, one float64, feature int) {
	// ramo frio sem cover: todas as contribuições abaixo seriam zero
	if zero == 0 && one == 0 {
		return
	}

	path := make([]pathElement, len(parent), len(parent)+1)
	copy(path, parent)
	path = extendPath(path, zero, one, feature)

	n := t.nodes[i]
	if n.isLeaf {
		// path[0] é o elemento fictício da raiz
		for k := 1; k < len(path); k++ {
			w := unwoundPathSum(path, k)
			phi[path[k].feature] += w * (path[k].one - path[k].zero) * n.leaf
		}
		return
	}

	hot := n.next(x)
	cold := n.yes
	if hot == n.yes {
		cold = n.no
	}

	incomingZero, incomingOne := 1.0, 1.0
	for k := range path {
		if path[k].feature == n.feature {
			incomingZero, incomingOne = path[k].zero, path[k].one
			path = unwindPath(path, k)
			break
		}
	}

	t.recurse(hot, x, phi, path, incomingZero*t.nodes[hot].cover/n.cover, incomingOne, n.feature)
	t.recurse(cold, x, phi, path, incomingZero*t.nodes[cold].cover/n.cover, 0, n.feature)
}

func extendPath(path []pathElement, zero, one float64, feature int) []pathElement {
	depth := len(path)

	weight := 0.0
	if depth == 0 {
		weight = 1
	}
	path = append(path, pathElement{feature: feature, zero: zero, one: one, weight: weight})

	for i := depth - 1; i >= 0; i-- {
		path[i+1].weight += one * path[i].weight * float64(i+1) / float64(depth+1)
		path[i].weight = zero * path[i].weight * float64(depth-i) / float64(depth+1)
	}

	return path
}

// unwindPath desfaz a extensão do elemento index; os pesos não são deslocados
func unwindPath(path []pathElement, index int) []pathElement {
	depth := len(path) - 1
	one, zero := path[index].one, path[index].zero
	next := path[depth].weight

	for i := depth - 1; i >= 0; i-- {
		if one != 0 {
			tmp := path[i].weight
			path[i].weight = next * float64(depth+1) / (float64(i+1) * one)
			next = tmp - path[i].weight*zero*float64(depth-i)/float64(depth+1)
		} else {
			path[i].weight = path[i].weight * float64(depth+1) / (zero * float64(depth-i))
		}
	}

	for i := index; i < depth; i++ {
		path[i].feature = path[i+1].feature
		path[i].zero = path[i+1].zero
		path[i].one = path[i+1].one
	}

	return path[:depth]
}

// unwoundPathSum é a soma dos pesos do caminho sem o elemento index, sem alterá-lo
func unwoundPathSum(path []pathElement, index int) float64 {
	depth := len(path) - 1
	one, zero := path[index].one, path[index].zero
	next := path[depth].weight
	total := 0.0

	if one != 0 {
		for i := depth - 1; i >= 0; i-- {
			tmp := next * float64(depth+1) / (float64(i+1) * one)
			total += tmp
			next = path[i].weight - tmp*zero*float64(depth-i)/float64(depth+1)
		}
	} else if zero != 0 {
		for i := depth - 1; i >= 0; i-- {
			total += path[i].weight / zero / (float64(depth-i) / float64(depth+1))
		}
	}

	return total
}
